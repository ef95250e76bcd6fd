// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// collectionSet pairs a collection with the indexes it should carry.
type collectionSet struct {
	name   string
	models func() []mongo.IndexModel
}

var sets = []collectionSet{
	{"users", usersIndexes},
	{"lessons", lessonsIndexes},
	{"lesson_resources", resourcesIndexes},
	{"user_progress", progressIndexes},
	{"user_settings", settingsIndexes},
	{"user_notifications", notificationsIndexes},
	{"lesson_notes", notesIndexes},
	{"user_telegram", telegramIndexes},
	{"lesson_reports", reportsIndexes},
	{"oauth_states", oauthStateIndexes},
	{"audit_events", auditIndexes},
}

/*
EnsureAll is called at startup. Every set is idempotent. Problems are
aggregated so one bad collection does not hide another, and startup can fail
fast on the combined error.
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string
	for _, s := range sets {
		if err := ensureIndexSet(ctx, db.Collection(s.name), s.models()); err != nil {
			problems = append(problems, s.name+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* -------------------------------------------------------------------------- */
/* Reconcile the desired indexes of one collection                            */
/* -------------------------------------------------------------------------- */

type existingIndex struct {
	Name   string `bson:"name"`
	Key    bson.D `bson:"key"`
	Unique *bool  `bson:"unique,omitempty"`
}

func keySig(keys bson.D) string {
	parts := make([]string, 0, len(keys))
	for _, kv := range keys {
		parts = append(parts, fmt.Sprintf("%s:%v", kv.Key, kv.Value))
	}
	return strings.Join(parts, ", ")
}

func boolVal(b *bool) bool { return b != nil && *b }

func isDuplicateKeyErr(err error) bool {
	if err == nil {
		return false
	}
	if mongo.IsDuplicateKeyError(err) {
		return true
	}
	s := err.Error()
	return strings.Contains(s, "E11000") || strings.Contains(strings.ToLower(s), "duplicate key")
}

// DocumentDB reports IndexOptionsConflict where Mongo reuses silently.
func isOptionsConflictErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "IndexOptionsConflict")
}

func listExisting(ctx context.Context, coll *mongo.Collection) map[string]existingIndex {
	out := map[string]existingIndex{}
	cur, err := coll.Indexes().List(ctx)
	if err != nil {
		return out
	}
	defer cur.Close(ctx)
	for cur.Next(ctx) {
		var idx existingIndex
		if err := cur.Decode(&idx); err != nil {
			zap.L().Warn("failed to decode existing index",
				zap.String("collection", coll.Name()), zap.Error(err))
			continue
		}
		out[keySig(idx.Key)] = idx
	}
	return out
}

// desired describes one wanted index.
type desired struct {
	model  mongo.IndexModel
	name   string
	unique bool
	sig    string
}

func describe(m mongo.IndexModel) desired {
	d := desired{model: m, sig: keySig(m.Keys.(bson.D))}
	if m.Options != nil {
		if m.Options.Name != nil {
			d.name = *m.Options.Name
		}
		d.unique = boolVal(m.Options.Unique)
	}
	return d
}

func ensureIndexSet(ctx context.Context, coll *mongo.Collection, models []mongo.IndexModel) error {
	var errs []string
	for _, m := range models {
		if err := ensureOne(ctx, coll, describe(m)); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

func ensureOne(ctx context.Context, coll *mongo.Collection, d desired) error {
	start := time.Now()
	log := zap.L().With(
		zap.String("collection", coll.Name()),
		zap.String("name", d.name),
		zap.String("keys", d.sig),
		zap.Bool("unique", d.unique))

	ex, found := listExisting(ctx, coll)[d.sig]
	if !found {
		created, err := coll.Indexes().CreateOne(ctx, d.model)
		if err == nil {
			log.Info("index ensured", zap.String("created_name", created), zap.Duration("took", time.Since(start)))
			return nil
		}
		if !isOptionsConflictErr(err) {
			log.Warn("index ensure failed", zap.Error(err))
			return fmt.Errorf("%s(%s): %w", coll.Name(), d.name, err)
		}
		// Another index already covers these keys; reconcile against it.
		ex, found = listExisting(ctx, coll)[d.sig]
		if !found {
			log.Warn("index ensure failed", zap.Error(err))
			return fmt.Errorf("%s(%s): %w", coll.Name(), d.name, err)
		}
	}

	if boolVal(ex.Unique) == d.unique && (d.name == "" || ex.Name == d.name) {
		log.Debug("reusing existing index", zap.Duration("took", time.Since(start)))
		return nil
	}

	// Name or uniqueness differs: drop and recreate.
	if _, err := coll.Indexes().DropOne(ctx, ex.Name); err != nil {
		log.Warn("drop existing index failed", zap.String("existing", ex.Name), zap.Error(err))
		return fmt.Errorf("%s(%s): drop %s failed: %w", coll.Name(), d.name, ex.Name, err)
	}
	if _, err := coll.Indexes().CreateOne(ctx, d.model); err != nil {
		if isDuplicateKeyErr(err) && d.unique {
			return fmt.Errorf("%s(%s): cannot create unique index (duplicates present on %s)", coll.Name(), d.name, d.sig)
		}
		return fmt.Errorf("%s(%s): %w", coll.Name(), d.name, err)
	}
	log.Info("index dropped and recreated", zap.String("previous", ex.Name), zap.Duration("took", time.Since(start)))
	return nil
}

/* -------------------------------------------------------------------------- */
/* Collection-specific index sets                                              */
/* -------------------------------------------------------------------------- */

func usersIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_email"),
		},
		// Only accounts that have linked Google carry google_id.
		{
			Keys: bson.D{{Key: "google_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_google_id").
				SetPartialFilterExpression(bson.M{"google_id": bson.M{"$type": "string"}}),
		},
		{
			Keys:    bson.D{{Key: "role", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_users_role_status"),
		},
	}
}

func lessonsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "day_index", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_lessons_day_index"),
		},
		{
			Keys:    bson.D{{Key: "topic_slug", Value: 1}},
			Options: options.Index().SetName("idx_lessons_topic_slug"),
		},
	}
}

func resourcesIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "lesson_id", Value: 1}, {Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_resources_lesson_title"),
		},
	}
}

func progressIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "lesson_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_progress_user_lesson"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "completed", Value: 1}},
			Options: options.Index().SetName("idx_progress_user_completed"),
		},
	}
}

func settingsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_user_settings_user"),
		},
	}
}

func notificationsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "channel", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_notifications_user_channel"),
		},
		// Reminder dispatch scans enabled preferences per channel.
		{
			Keys:    bson.D{{Key: "channel", Value: 1}, {Key: "enabled", Value: 1}},
			Options: options.Index().SetName("idx_notifications_channel_enabled"),
		},
	}
}

func notesIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "lesson_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_notes_user_lesson"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "updated_at", Value: -1}},
			Options: options.Index().SetName("idx_notes_user_updated"),
		},
	}
}

func telegramIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_telegram_user"),
		},
		{
			Keys:    bson.D{{Key: "activation_code", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_telegram_code_status"),
		},
	}
}

func reportsIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("idx_reports_status_created"),
		},
		{
			Keys:    bson.D{{Key: "lesson_id", Value: 1}},
			Options: options.Index().SetName("idx_reports_lesson"),
		},
	}
}

func auditIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_ts_desc"),
		},
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "timestamp", Value: -1}},
			Options: options.Index().SetName("idx_audit_user_ts"),
		},
		{
			Keys: bson.D{
				{Key: "category", Value: 1},
				{Key: "event_type", Value: 1},
				{Key: "timestamp", Value: -1},
			},
			Options: options.Index().SetName("idx_audit_cat_type_ts"),
		},
	}
}

func oauthStateIndexes() []mongo.IndexModel {
	return []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "state", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_oauth_state"),
		},
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("idx_oauth_expires_ttl"),
		},
	}
}
