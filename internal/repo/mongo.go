package repo

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/BuzzLyutic/task-cache-service/internal/model"
)

const tasksCollection = "tasks"

// taskDocument - представление задачи в коллекции
type taskDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	Status      string             `bson:"status"`
}

func (d taskDocument) toModel() model.StoredTask {
	return model.StoredTask{
		ID: d.ID.Hex(),
		Task: model.Task{
			Title:       d.Title,
			Description: d.Description,
			Status:      model.TaskStatus(d.Status),
		},
	}
}

type MongoTaskRepo struct { // Репозиторий поверх документной БД
	coll *mongo.Collection
}

func NewMongoTaskRepo(db *mongo.Database) *MongoTaskRepo {
	return &MongoTaskRepo{
		coll: db.Collection(tasksCollection),
	}
}

func (r *MongoTaskRepo) Create(ctx context.Context, t model.Task) (model.StoredTask, error) {
	doc := taskDocument{
		ID:          primitive.NewObjectID(),
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.StoredTask{}, ErrorConflict
		}
		return model.StoredTask{}, err
	}
	return doc.toModel(), nil
}

func (r *MongoTaskRepo) Get(ctx context.Context, id string) (model.StoredTask, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.StoredTask{}, ErrorNotFound
	}

	var doc taskDocument
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.StoredTask{}, ErrorNotFound
	}
	if err != nil {
		return model.StoredTask{}, err
	}
	return doc.toModel(), nil
}

// Update: ModifiedCount == 0 покрывает и отсутствующую запись, и обновление без изменений.
func (r *MongoTaskRepo) Update(ctx context.Context, id string, t model.Task) (model.StoredTask, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return model.StoredTask{}, ErrorNotFound
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"title":       t.Title,
		"description": t.Description,
		"status":      string(t.Status),
	}})
	if err != nil {
		return model.StoredTask{}, err
	}
	if res.ModifiedCount == 0 {
		return model.StoredTask{}, ErrorNotFound
	}
	return r.Get(ctx, id)
}

func (r *MongoTaskRepo) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}
