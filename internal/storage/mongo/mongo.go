// mongo реализует storage.CommentsStorage и storage.VideosStorage поверх MongoDB.
// Комментарии и видео лежат в одной базе; все счётчики обновляются
// атомарными операциями над одним документом (в т.ч. pipeline-апдейтами).
package mongo

import (
	"context"
	"fmt"

	"github.com/pribylovaa/go-shorts-platform/internal/config"
	"github.com/pribylovaa/go-shorts-platform/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	commentsCollection = "comments"
	videosCollection   = "videos"
)

// Mongo - тонкий адаптер для подключения и коллекций MongoDB.
type Mongo struct {
	client *mongodriver.Client
	db     *mongodriver.Database

	Comments *Comments
	Videos   *Videos
}

// Comments — репозиторий коллекции comments.
type Comments struct {
	coll *mongodriver.Collection
}

// Videos — репозиторий коллекции videos.
type Videos struct {
	coll *mongodriver.Collection
}

var (
	_ storage.CommentsStorage = (*Comments)(nil)
	_ storage.VideosStorage   = (*Videos)(nil)
)

// New подключается к MongoDB, проверяет соединение и создаёт индексы.
func New(ctx context.Context, cfg *config.Config) (*Mongo, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mongo: nil config")
	}

	if cfg.Mongo.URL == "" {
		return nil, fmt.Errorf("mongo: empty cfg.Mongo.URL")
	}

	cli, err := mongodriver.Connect(ctx, options.Client().ApplyURI(cfg.Mongo.URL))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := cli.Ping(ctx, readpref.Primary()); err != nil {
		_ = cli.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	db := cli.Database(cfg.Mongo.Database)
	m := &Mongo{
		client:   cli,
		db:       db,
		Comments: &Comments{coll: db.Collection(commentsCollection)},
		Videos:   &Videos{coll: db.Collection(videosCollection)},
	}

	if err := m.ensureIndexes(ctx); err != nil {
		_ = m.Close(ctx)
		return nil, err
	}

	return m, nil
}

// Ping — проверка готовности для /healthz.
func (m *Mongo) Ping(ctx context.Context) error {
	return m.client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// ensureIndexes создаёт индексы:
//   - корневые комментарии видео: video_id + parent_id + status + created_at(desc);
//   - превью ответов: parent_id + created_at;
//   - поддерево по префиксу пути: thread.path;
//   - кандидаты реконсилера: updated_at + video_id;
//   - видео: owner_id + created_at и updated_at для реконсилера.
func (m *Mongo) ensureIndexes(ctx context.Context) error {
	commentIdx := []mongodriver.IndexModel{
		{
			Keys: bson.D{
				{Key: "video_id", Value: 1},
				{Key: "parent_id", Value: 1},
				{Key: "moderation.status", Value: 1},
				{Key: "created_at", Value: -1},
			},
			Options: options.Index().SetName("video_parent_status_created"),
		},
		{
			Keys:    bson.D{{Key: "parent_id", Value: 1}, {Key: "created_at", Value: 1}},
			Options: options.Index().SetName("parent_created_asc"),
		},
		{
			Keys:    bson.D{{Key: "thread.path", Value: 1}},
			Options: options.Index().SetName("thread_path"),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: 1}, {Key: "video_id", Value: 1}},
			Options: options.Index().SetName("updated_video"),
		},
	}

	if _, err := m.Comments.coll.Indexes().CreateMany(ctx, commentIdx); err != nil {
		return fmt.Errorf("mongo ensure comment indexes: %w", err)
	}

	videoIdx := []mongodriver.IndexModel{
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("owner_created_desc"),
		},
		{
			Keys:    bson.D{{Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("updated_desc"),
		},
	}

	if _, err := m.Videos.coll.Indexes().CreateMany(ctx, videoIdx); err != nil {
		return fmt.Errorf("mongo ensure video indexes: %w", err)
	}

	return nil
}
