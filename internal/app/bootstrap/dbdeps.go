// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds the backends shared by every hook. Background is allocated
// in ConnectDB so the hooks, which receive DBDeps by value, all see the same
// workers.
type DBDeps struct {
	LearnRustMongoClient   *mongo.Client
	LearnRustMongoDatabase *mongo.Database

	Background *Background
}
