package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/friendgraph/internal/model"
)

// ReactionCounts is a fresh aggregate over post_reactions for one post.
type ReactionCounts struct {
	Likes    int64
	Dislikes int64
}

type ReactionRepository interface {
	// ApplyAndRecount upserts the (post, user) reaction and rewrites both
	// counters on the post from a recount, all in one transaction that holds
	// the post row lock. It returns the refreshed post.
	ApplyAndRecount(ctx context.Context, postID, userLogin string, kind model.ReactionKind) (*model.Post, error)
	Get(ctx context.Context, postID, userLogin string) (*model.Reaction, error)
	Count(ctx context.Context, postID string) (ReactionCounts, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository { return &reactionRepository{db: db} }

func (r *reactionRepository) ApplyAndRecount(ctx context.Context, postID, userLogin string, kind model.ReactionKind) (*model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// SELECT ... FOR UPDATE serializes writers of this post; sqlite ignores it
		// and relies on its database-level write lock.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			Where("id = ?", postID).
			Take(&model.Post{}).Error; err != nil {
			return err
		}

		now := time.Now().UTC()
		row := &model.Reaction{PostID: postID, UserLogin: userLogin, Kind: kind, CreatedAt: now, UpdatedAt: now}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "post_id"}, {Name: "user_login"}},
			DoUpdates: clause.AssignmentColumns([]string{"reaction", "updated_at"}),
		}).Create(row).Error; err != nil {
			return err
		}

		counts, err := countReactions(tx, postID)
		if err != nil {
			return err
		}
		if err := tx.Model(&model.Post{}).
			Where("id = ?", postID).
			Updates(map[string]any{"likes_count": counts.Likes, "dislikes_count": counts.Dislikes}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", postID).Take(&post).Error
	})
	if err != nil {
		return nil, translate(err)
	}
	return &post, nil
}

func (r *reactionRepository) Get(ctx context.Context, postID, userLogin string) (*model.Reaction, error) {
	var re model.Reaction
	if err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_login = ?", postID, userLogin).
		Take(&re).Error; err != nil {
		return nil, translate(err)
	}
	return &re, nil
}

func (r *reactionRepository) Count(ctx context.Context, postID string) (ReactionCounts, error) {
	return countReactions(r.db.WithContext(ctx), postID)
}

func countReactions(db *gorm.DB, postID string) (ReactionCounts, error) {
	var c ReactionCounts
	err := db.Model(&model.Reaction{}).
		Select(
			"COALESCE(SUM(CASE WHEN reaction = ? THEN 1 ELSE 0 END), 0) AS likes, "+
				"COALESCE(SUM(CASE WHEN reaction = ? THEN 1 ELSE 0 END), 0) AS dislikes",
			model.ReactionLike, model.ReactionDislike,
		).
		Where("post_id = ?", postID).
		Scan(&c).Error
	return c, err
}
