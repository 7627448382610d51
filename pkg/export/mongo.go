package export

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/ytcrawl/ytcrawl/pkg/crawl"
	"github.com/ytcrawl/ytcrawl/pkg/errors"
)

const (
	mongoDatabase   = "ytcrawl"
	mongoCollection = "videos"
	mongoTimeout    = 10 * time.Second
)

// ExportMongo inserts one document per item into the videos collection
// of the ytcrawl database at uri. The run id ties documents from the
// same crawl together.
func ExportMongo(ctx context.Context, uri, runID string, items []*crawl.Item) error {
	ctx, cancel := context.WithTimeout(ctx, mongoTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "connect to MongoDB at %s", uri)
	}
	defer client.Disconnect(context.Background())

	if err := client.Ping(ctx, nil); err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "ping MongoDB at %s", uri)
	}

	docs := make([]any, len(items))
	for i, it := range items {
		docs[i] = bson.M{
			"videoId":       it.ID,
			"title":         it.Title,
			"description":   it.Description,
			"channelId":     it.ChannelID,
			"channelTitle":  it.ChannelTitle,
			"publishedAt":   it.PublishedAt,
			"thumbnail":     it.Thumbnail,
			"rank":          it.Rank,
			"depth":         it.Depth,
			"relatedVideos": it.RelatedIDs,
			"runId":         runID,
		}
	}

	coll := client.Database(mongoDatabase).Collection(mongoCollection)
	if _, err := coll.InsertMany(ctx, docs); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "insert %d documents", len(docs))
	}
	return nil
}
