package repo

import (
	"context"
	"fmt"
	"net/url"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverMemory   = "memory"
)

// Backend держит клиент хранилища, выбранный по схеме URI.
type Backend struct {
	Repo   TaskRepository
	Driver string

	pool   *pgxpool.Pool
	client *mongo.Client
}

// Open не устанавливает соединение: pgxpool и mongo.Client подключаются при первом запросе.
func Open(ctx context.Context, uri, database string) (*Backend, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("parse store uri: %w", err)
	}

	switch u.Scheme {
	case "postgres", "postgresql":
		pool, err := pgxpool.New(ctx, uri)
		if err != nil {
			return nil, fmt.Errorf("create postgres pool: %w", err)
		}
		return &Backend{Repo: NewPgTaskRepo(pool), Driver: DriverPostgres, pool: pool}, nil

	case "mongodb", "mongodb+srv":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		if err != nil {
			return nil, fmt.Errorf("create mongo client: %w", err)
		}
		return &Backend{Repo: NewMongoTaskRepo(client.Database(database)), Driver: DriverMongo, client: client}, nil

	case "memory":
		return &Backend{Repo: NewMemoryTaskRepo(), Driver: DriverMemory}, nil
	}

	return nil, fmt.Errorf("unsupported store scheme %q", u.Scheme)
}

func (b *Backend) Ping(ctx context.Context) error {
	switch b.Driver {
	case DriverPostgres:
		return b.pool.Ping(ctx)
	case DriverMongo:
		return b.client.Ping(ctx, readpref.Primary())
	}
	return nil
}

// Migrate нужен только реляционному хранилищу.
func (b *Backend) Migrate(ctx context.Context) error {
	if b.Driver != DriverPostgres {
		return nil
	}
	return Migrate(ctx, b.pool)
}

func (b *Backend) Close(ctx context.Context) error {
	switch b.Driver {
	case DriverPostgres:
		b.pool.Close()
	case DriverMongo:
		return b.client.Disconnect(ctx)
	}
	return nil
}
