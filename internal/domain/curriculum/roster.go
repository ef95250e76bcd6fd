// internal/domain/curriculum/roster.go
package curriculum

// DefaultRoster is the fixed 121-day plan. Position i holds day i+1.
var DefaultRoster = Roster{
	{Date: "Dec 1", Weekday: "Mon", Topic: "Setup: Install Rust (rustup) & create a new project (cargo new).", Concept: "Environment", Phase: 1},
	{Date: "Dec 2", Weekday: "Tue", Topic: "First Code: main function and println! macro.", Concept: "Execution", Phase: 1},
	{Date: "Dec 3", Weekday: "Wed", Topic: "Variables: let keyword and scope.", Concept: "Variables", Phase: 1},
	{Date: "Dec 4", Weekday: "Thu", Topic: "Mutability: Using the mut keyword.", Concept: "Variables", Phase: 1},
	{Date: "Dec 5", Weekday: "Fri", Topic: "Shadowing: Redefining a variable using let.", Concept: "Variables", Phase: 1},
	{Date: "Dec 6", Weekday: "Sat", Topic: "Constants: Defining a const and its naming convention.", Concept: "Variables", Phase: 1},
	{Date: "Dec 7", Weekday: "Sun", Topic: "Review: Write a small program using let, mut, and shadowing.", Concept: "Practice", Phase: 1},
	{Date: "Dec 8", Weekday: "Mon", Topic: "Data Types: Integers (i8 to i128, u8 to u128).", Concept: "Scalars", Phase: 1},
	{Date: "Dec 9", Weekday: "Tue", Topic: "Data Types: Floating-Point (f32, f64) and Booleans.", Concept: "Scalars", Phase: 1},
	{Date: "Dec 10", Weekday: "Wed", Topic: "Compound Types: Arrays (fixed size) vs. Tuples (mixed types).", Concept: "Compounds", Phase: 1},
	{Date: "Dec 11", Weekday: "Thu", Topic: "Functions: Defining a function and calling it.", Concept: "Functions", Phase: 1},
	{Date: "Dec 12", Weekday: "Fri", Topic: "Functions: Parameters and the return arrow (->).", Concept: "Functions", Phase: 1},
	{Date: "Dec 13", Weekday: "Sat", Topic: "Control Flow: The if/else expression (used for assignment).", Concept: "Flow", Phase: 1},
	{Date: "Dec 14", Weekday: "Sun", Topic: "Review: Write a function that takes two f64s and returns the larger one using if/else.", Concept: "Practice", Phase: 1},
	{Date: "Dec 15", Weekday: "Mon", Topic: "Loops: The basic loop (infinite loop) and break.", Concept: "Loops", Phase: 1},
	{Date: "Dec 16", Weekday: "Tue", Topic: "Loops: The while condition loop.", Concept: "Loops", Phase: 1},
	{Date: "Dec 17", Weekday: "Wed", Topic: "Loops: Iterating over collections with for.", Concept: "Loops", Phase: 1},
	{Date: "Dec 18", Weekday: "Thu", Topic: "Ownership Rule 1: The Stack and the Heap (Read about memory).", Concept: "Ownership", Phase: 1},
	{Date: "Dec 19", Weekday: "Fri", Topic: "Ownership Rule 2: What is a 'move'? (Focus on integers vs. vectors).", Concept: "Ownership", Phase: 1},
	{Date: "Dec 20", Weekday: "Sat", Topic: "Ownership Rule 3: What is a 'clone'? (Deep copy).", Concept: "Ownership", Phase: 1},
	{Date: "Dec 21", Weekday: "Sun", Topic: "Review: Practice moving/cloning a String and a simple i32.", Concept: "Practice", Phase: 1},
	{Date: "Dec 22", Weekday: "Mon", Topic: "Borrowing: Passing data by reference (&).", Concept: "Borrowing", Phase: 1},
	{Date: "Dec 23", Weekday: "Tue", Topic: "Mutable References: Passing data by mutable reference (&mut).", Concept: "Borrowing", Phase: 1},
	{Date: "Dec 24", Weekday: "Wed", Topic: "The Rules of Borrowing: One mutable OR many immutable references.", Concept: "Borrowing", Phase: 1},
	{Date: "Dec 25", Weekday: "Thu", Topic: "Structs: Defining a simple named struct.", Concept: "Structs", Phase: 1},
	{Date: "Dec 26", Weekday: "Fri", Topic: "Structs: Creating and accessing instance fields.", Concept: "Structs", Phase: 1},
	{Date: "Dec 27", Weekday: "Sat", Topic: "Tuple Structs: Structs without named fields.", Concept: "Structs", Phase: 1},
	{Date: "Dec 28", Weekday: "Sun", Topic: "Review: Create a Point {x, y} struct and pass it to a function.", Concept: "Practice", Phase: 1},
	{Date: "Dec 29", Weekday: "Mon", Topic: "Enums: Defining a simple enum.", Concept: "Enums", Phase: 1},
	{Date: "Dec 30", Weekday: "Tue", Topic: "Enums: Enums with data (e.g., Message::Write(String)).", Concept: "Enums", Phase: 1},
	{Date: "Dec 31", Weekday: "Wed", Topic: "Methods: Implementing a simple method for a struct using impl.", Concept: "Methods", Phase: 1},
	{Date: "Jan 1", Weekday: "Thu", Topic: "Vectors: Creating and adding elements (push).", Concept: "Collection", Phase: 2},
	{Date: "Jan 2", Weekday: "Fri", Topic: "Vectors: Accessing elements by index (the & vs &mut rules).", Concept: "Collection", Phase: 2},
	{Date: "Jan 3", Weekday: "Sat", Topic: "Vectors: Using .get() for safe element access (returns Option<T>).", Concept: "Safety", Phase: 2},
	{Date: "Jan 4", Weekday: "Sun", Topic: "Review: Write a loop to print all elements in a Vector safely.", Concept: "Practice", Phase: 2},
	{Date: "Jan 5", Weekday: "Mon", Topic: "Strings: &str (string slice/immutable) vs. String (owned/mutable).", Concept: "Strings", Phase: 2},
	{Date: "Jan 6", Weekday: "Tue", Topic: "Strings: Creating and updating a String.", Concept: "Strings", Phase: 2},
	{Date: "Jan 7", Weekday: "Wed", Topic: "Strings: Concatenation using + vs .push_str().", Concept: "Strings", Phase: 2},
	{Date: "Jan 8", Weekday: "Thu", Topic: "HashMaps: Creating a new HashMap.", Concept: "Collection", Phase: 2},
	{Date: "Jan 9", Weekday: "Fri", Topic: "HashMaps: Inserting key-value pairs (insert).", Concept: "Collection", Phase: 2},
	{Date: "Jan 10", Weekday: "Sat", Topic: "HashMaps: Retrieving values (get).", Concept: "Collection", Phase: 2},
	{Date: "Jan 11", Weekday: "Sun", Topic: "Review: Create a HashMap<String, i32> and iterate over it.", Concept: "Practice", Phase: 2},
	{Date: "Jan 12", Weekday: "Mon", Topic: "Error Handling: The panic! macro and when to use it.", Concept: "Error", Phase: 2},
	{Date: "Jan 13", Weekday: "Tue", Topic: "match control flow: Basic usage on an enum.", Concept: "Flow", Phase: 2},
	{Date: "Jan 14", Weekday: "Wed", Topic: "Option<T>: Using match to handle Some(T) or None.", Concept: "Robustness", Phase: 2},
	{Date: "Jan 15", Weekday: "Thu", Topic: "if let: A concise way to handle single match cases.", Concept: "Robustness", Phase: 2},
	{Date: "Jan 16", Weekday: "Fri", Topic: "unwrap() and expect(): Using them (and why to avoid them).", Concept: "Robustness", Phase: 2},
	{Date: "Jan 17", Weekday: "Sat", Topic: "Result<T, E>: Understanding Ok(T) and Err(E).", Concept: "Robustness", Phase: 2},
	{Date: "Jan 18", Weekday: "Sun", Topic: "Review: Write a function that returns Option<i32> and handle it.", Concept: "Practice", Phase: 2},
	{Date: "Jan 19", Weekday: "Mon", Topic: "Propagating Errors: The ? operator.", Concept: "Robustness", Phase: 2},
	{Date: "Jan 20", Weekday: "Tue", Topic: "Box<T>: The simplest Smart Pointer for Heap allocation.", Concept: "Smart Ptrs", Phase: 2},
	{Date: "Jan 21", Weekday: "Wed", Topic: "Trait Objects: Polymorphism with Box<dyn Trait>.", Concept: "Traits", Phase: 2},
	{Date: "Jan 22", Weekday: "Thu", Topic: "Modules: Defining a module (mod) and separating code.", Concept: "Organization", Phase: 2},
	{Date: "Jan 23", Weekday: "Fri", Topic: "Modules: Using pub to expose items.", Concept: "Organization", Phase: 2},
	{Date: "Jan 24", Weekday: "Sat", Topic: "Modules: Bringing items into scope with use.", Concept: "Organization", Phase: 2},
	{Date: "Jan 25", Weekday: "Sun", Topic: "Review: Split a small program into main.rs and lib.rs.", Concept: "Practice", Phase: 2},
	{Date: "Jan 26", Weekday: "Mon", Topic: "External Crates: Adding a dependency in Cargo.toml.", Concept: "Cargo", Phase: 2},
	{Date: "Jan 27", Weekday: "Tue", Topic: "External Crates: Using the rand crate to generate a number.", Concept: "Cargo", Phase: 2},
	{Date: "Jan 28", Weekday: "Wed", Topic: "Testing: Writing a simple unit test with #[test].", Concept: "Testing", Phase: 2},
	{Date: "Jan 29", Weekday: "Thu", Topic: "Testing: Using assert!, assert_eq!, and assert_ne!.", Concept: "Testing", Phase: 2},
	{Date: "Jan 30", Weekday: "Fri", Topic: "Testing: Handling expected panics with #[should_panic].", Concept: "Testing", Phase: 2},
	{Date: "Jan 31", Weekday: "Sat", Topic: "Review: Write a function that divides numbers and test it.", Concept: "Practice", Phase: 2},
	{Date: "Feb 1", Weekday: "Sun", Topic: "Review: Final review of Result, ?, and match.", Concept: "Practice", Phase: 3},
	{Date: "Feb 2", Weekday: "Mon", Topic: "Traits: Defining a simple trait (e.g., Summary).", Concept: "Traits", Phase: 3},
	{Date: "Feb 3", Weekday: "Tue", Topic: "Traits: Implementing a trait for a struct.", Concept: "Traits", Phase: 3},
	{Date: "Feb 4", Weekday: "Wed", Topic: "Trait Bounds: Using impl Trait in function parameters.", Concept: "Traits", Phase: 3},
	{Date: "Feb 5", Weekday: "Thu", Topic: "Trait Bounds: Using the where clause for readability.", Concept: "Traits", Phase: 3},
	{Date: "Feb 6", Weekday: "Fri", Topic: "Trait Methods: Using a default implementation in a trait.", Concept: "Traits", Phase: 3},
	{Date: "Feb 7", Weekday: "Sat", Topic: "Generics: Using type parameters (<T>) in functions.", Concept: "Generics", Phase: 3},
	{Date: "Feb 8", Weekday: "Sun", Topic: "Review: Implement a trait for two different structs.", Concept: "Practice", Phase: 3},
	{Date: "Feb 9", Weekday: "Mon", Topic: "Generics: Using type parameters in Struct definitions.", Concept: "Generics", Phase: 3},
	{Date: "Feb 10", Weekday: "Tue", Topic: "Generics: Implementing methods for generic structs.", Concept: "Generics", Phase: 3},
	{Date: "Feb 11", Weekday: "Wed", Topic: "Lifetimes: What is a lifetime and why are they needed?", Concept: "Lifetimes", Phase: 3},
	{Date: "Feb 12", Weekday: "Thu", Topic: "Lifetimes: The 'Elision Rules' (implicit lifetimes).", Concept: "Lifetimes", Phase: 3},
	{Date: "Feb 13", Weekday: "Fri", Topic: "Lifetimes: Explicitly annotating input lifetimes ('a).", Concept: "Lifetimes", Phase: 3},
	{Date: "Feb 14", Weekday: "Sat", Topic: "Lifetimes: Annotating output lifetimes.", Concept: "Lifetimes", Phase: 3},
	{Date: "Feb 15", Weekday: "Sun", Topic: "Review: Write a function returning the longer of two string slices.", Concept: "Practice", Phase: 3},
	{Date: "Feb 16", Weekday: "Mon", Topic: "Closures: Defining a simple inline closure (|...| ...).", Concept: "Functional", Phase: 3},
	{Date: "Feb 17", Weekday: "Tue", Topic: "Closures: Capturing the environment (Fn, FnMut, FnOnce).", Concept: "Functional", Phase: 3},
	{Date: "Feb 18", Weekday: "Wed", Topic: "Iterators: The .iter() method on collections.", Concept: "Iterators", Phase: 3},
	{Date: "Feb 19", Weekday: "Thu", Topic: "Iterators: The .map() method.", Concept: "Iterators", Phase: 3},
	{Date: "Feb 20", Weekday: "Fri", Topic: "Iterators: The .filter() method.", Concept: "Iterators", Phase: 3},
	{Date: "Feb 21", Weekday: "Sat", Topic: "Iterators: The .collect() method.", Concept: "Iterators", Phase: 3},
	{Date: "Feb 22", Weekday: "Sun", Topic: "Review: Use an iterator chain on a vector of numbers.", Concept: "Practice", Phase: 3},
	{Date: "Feb 23", Weekday: "Mon", Topic: "Path resolution: Absolute (crate::) vs Relative (super::).", Concept: "Organization", Phase: 3},
	{Date: "Feb 24", Weekday: "Tue", Topic: "Rc<T>: Reference Counting for shared, immutable data.", Concept: "Smart Ptrs", Phase: 3},
	{Date: "Feb 25", Weekday: "Wed", Topic: "RefCell<T>: Interior Mutability.", Concept: "Smart Ptrs", Phase: 3},
	{Date: "Feb 26", Weekday: "Thu", Topic: "Rc + RefCell: Shared, mutable data pattern.", Concept: "Smart Ptrs", Phase: 3},
	{Date: "Feb 27", Weekday: "Fri", Topic: "Macros: Declarative (macro_rules!) vs Procedural.", Concept: "Metaprogramming", Phase: 3},
	{Date: "Feb 28", Weekday: "Sat", Topic: "Review: Review Rc, RefCell, and mutability rules.", Concept: "Practice", Phase: 3},
	{Date: "Mar 1", Weekday: "Sun", Topic: "Review: Final review of Traits and Generics.", Concept: "Practice", Phase: 4},
	{Date: "Mar 2", Weekday: "Mon", Topic: "Concurrency: Spawning a thread (std::thread::spawn).", Concept: "Concurrency", Phase: 4},
	{Date: "Mar 3", Weekday: "Tue", Topic: "Concurrency: Using join() to wait for threads.", Concept: "Concurrency", Phase: 4},
	{Date: "Mar 4", Weekday: "Wed", Topic: "Message Passing: Creating a channel (mpsc::channel).", Concept: "Concurrency", Phase: 4},
	{Date: "Mar 5", Weekday: "Thu", Topic: "Message Passing: Sending a message (tx.send(...)).", Concept: "Concurrency", Phase: 4},
	{Date: "Mar 6", Weekday: "Fri", Topic: "Message Passing: Receiving a message (rx.recv()).", Concept: "Concurrency", Phase: 4},
	{Date: "Mar 7", Weekday: "Sat", Topic: "Arc<T>: Atomically Reference Counted data.", Concept: "Concurrency", Phase: 4},
	{Date: "Mar 8", Weekday: "Sun", Topic: "Review: Threaded program sending data to main thread.", Concept: "Practice", Phase: 4},
	{Date: "Mar 9", Weekday: "Mon", Topic: "Mutex<T>: Mutual Exclusion for shared, mutable data.", Concept: "Concurrency", Phase: 4},
	{Date: "Mar 10", Weekday: "Tue", Topic: "Send and Sync: The thread-safety marker traits.", Concept: "Concurrency", Phase: 4},
	{Date: "Mar 11", Weekday: "Wed", Topic: "I/O: Opening a file with File::open.", Concept: "I/O", Phase: 4},
	{Date: "Mar 12", Weekday: "Thu", Topic: "I/O: Reading a file to a String.", Concept: "I/O", Phase: 4},
	{Date: "Mar 13", Weekday: "Fri", Topic: "I/O: Writing to a file.", Concept: "I/O", Phase: 4},
	{Date: "Mar 14", Weekday: "Sat", Topic: "Command Line Args: Reading std::env::args.", Concept: "CLI", Phase: 4},
	{Date: "Mar 15", Weekday: "Sun", Topic: "Review: Read a file specified by CLI args and print it.", Concept: "Practice", Phase: 4},
	{Date: "Mar 16", Weekday: "Mon", Topic: "Error Handling: Defining a custom error Enum.", Concept: "Error", Phase: 4},
	{Date: "Mar 17", Weekday: "Tue", Topic: "Error Handling: Implementing the From trait.", Concept: "Error", Phase: 4},
	{Date: "Mar 18", Weekday: "Wed", Topic: "Async/Await: Intro to async and await keywords.", Concept: "Async", Phase: 4},
	{Date: "Mar 19", Weekday: "Thu", Topic: "Async Runtimes: Basics of tokio or async-std.", Concept: "Async", Phase: 4},
	{Date: "Mar 20", Weekday: "Fri", Topic: "Unsafe Rust: When and why it is needed.", Concept: "Advanced", Phase: 4},
	{Date: "Mar 21", Weekday: "Sat", Topic: "Unsafe Rust: Calling an unsafe function.", Concept: "Advanced", Phase: 4},
	{Date: "Mar 22", Weekday: "Sun", Topic: "Review: Explore a popular crate (e.g., serde).", Concept: "Exploration", Phase: 4},
	{Date: "Mar 23", Weekday: "Mon", Topic: "Project Focus: Define a small CLI tool idea.", Concept: "Planning", Phase: 4},
	{Date: "Mar 24", Weekday: "Tue", Topic: "Project Focus: Sketch out structs and enums.", Concept: "Planning", Phase: 4},
	{Date: "Mar 25", Weekday: "Wed", Topic: "Project Focus: Implement core parsing logic.", Concept: "Implementation", Phase: 4},
	{Date: "Mar 26", Weekday: "Thu", Topic: "Project Focus: Implement main logic.", Concept: "Implementation", Phase: 4},
	{Date: "Mar 27", Weekday: "Fri", Topic: "Project Focus: Add error handling.", Concept: "Implementation", Phase: 4},
	{Date: "Mar 28", Weekday: "Sat", Topic: "Project Focus: Write integration tests.", Concept: "Testing", Phase: 4},
	{Date: "Mar 29", Weekday: "Sun", Topic: "Review: Final review of Ownership rules.", Concept: "Review", Phase: 4},
	{Date: "Mar 30", Weekday: "Mon", Topic: "Final: Look for a beginner project on GitHub.", Concept: "Next Steps", Phase: 4},
	{Date: "Mar 31", Weekday: "Tue", Topic: "Final: Research the Rust Roadmap for 2026.", Concept: "Next Steps", Phase: 4},
}
