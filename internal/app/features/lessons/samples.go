// internal/app/features/lessons/samples.go
package lessons

import "github.com/dalemusser/learnrust/internal/domain/models"

// samples are built-in lessons served when the store has nothing for a day.
var samples = map[int]models.FullLesson{
	1: {
		Day:                  1,
		Title:                "Hello, World! & Variables",
		TopicSlug:            "Variables",
		EstimatedTimeMinutes: 6,
		Theory: "Rust variables are immutable by default. To make a variable changeable, you must explicitly declare it with the `mut` keyword. Rust also strongly enforces type safety.\n\n" +
			"This immutability-by-default approach helps prevent bugs and makes code easier to reason about. When you need a variable to change, you explicitly opt-in with `mut`.",
		CoreExample: models.CoreExample{
			Code: `fn main() {
    let immutable_value = 10; // Immutable by default
    let mut mutable_value = 5; // Use mut keyword

    mutable_value = mutable_value + 1; // Works
    // immutable_value = 11; // Compile error!

    println!("Mutable value: {}", mutable_value);
}`,
			Explanation: "This demonstrates immutability (default) versus mutability (`mut`). The last line uses a macro (`println!`) to output the result.",
		},
		PitfallExample: models.PitfallContent{
			Code: `fn main() {
    let x: u8 = 255;
    let y: i8 = x; // Type mismatch: u8 to i8
    println!("{}", y);
}`,
			ErrorHint: "Rust prevents implicit type conversion between unsigned integer (`u8`) and signed integer (`i8`). You must use explicit casting (`as`).",
		},
		Challenge: models.ChallengeContent{
			Template: `fn main() {
    let num = 42;
    // FIX: Make this variable changeable
    let value = 100;
    value = 50;
    println!("Final value: {}", value);
}`,
			Instructions:   "Modify the `value` variable declaration so that it can be reassigned without causing a compilation error. Remember the keyword!",
			ExpectedOutput: "Final value: 50",
		},
	},
	2: {
		Day:                  2,
		Title:                "Ownership Basics",
		TopicSlug:            "Ownership",
		EstimatedTimeMinutes: 8,
		Theory: "Ownership is Rust's most unique feature. It enables memory safety without garbage collection. Every value in Rust has a single owner, and when the owner goes out of scope, the value is dropped.\n\n" +
			"The three rules of ownership:\n1. Each value has an owner\n2. There can only be one owner at a time\n3. When the owner goes out of scope, the value is dropped",
		CoreExample: models.CoreExample{
			Code: `fn main() {
    let s1 = String::from("hello");
    let s2 = s1; // s1 is moved to s2

    // println!("{}", s1); // Error! s1 is no longer valid
    println!("{}", s2); // This works
}`,
			Explanation: "When we assign s1 to s2, the ownership of the String is moved. s1 is no longer valid and cannot be used.",
		},
		PitfallExample: models.PitfallContent{
			Code: `fn main() {
    let s = String::from("hello");
    takes_ownership(s);
    println!("{}", s); // Error! s was moved
}

fn takes_ownership(s: String) {
    println!("{}", s);
}`,
			ErrorHint: "When passing a String to a function, ownership is transferred. The original variable can no longer be used unless the function returns ownership.",
		},
		Challenge: models.ChallengeContent{
			Template: `fn main() {
    let s = String::from("hello");
    // FIX: Make this work without moving ownership
    print_string(s);
    println!("Original: {}", s);
}

fn print_string(s: String) {
    println!("Printed: {}", s);
}`,
			Instructions:   "Modify the function to borrow the string instead of taking ownership. Use a reference (&) to fix the code.",
			ExpectedOutput: "Printed: hello\nOriginal: hello",
		},
	},
}

// Sample returns the built-in lesson for day, if any.
func Sample(day int) (models.FullLesson, bool) {
	l, ok := samples[day]
	return l, ok
}
