package repo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/BuzzLyutic/task-cache-service/internal/testutil"
)

func TestMongoTaskRepo_Contract(t *testing.T) {
	if testing.Short() {
		t.Skip("integration test")
	}

	db, cleanup := testutil.SetupMongo(t)
	defer cleanup()

	runRepositoryContract(t, NewMongoTaskRepo(db), primitive.NewObjectID().Hex())
}
