package stories

import (
	"database/sql"
)

type Backend struct {
	db *sql.DB
}

func NewBackend(db *sql.DB) *Backend {
	return &Backend{db}
}

const storyColumns = "id, user_id, author_name, author_image, media_type, media_ref, background, caption, video_duration, created_at, expires_at, privacy, highlighted"

// AddStory validates and persists a new story.
func (b *Backend) AddStory(story *Story) error {
	if err := validate(story); err != nil {
		return err
	}

	stmt, err := b.db.Prepare("INSERT INTO stories (" + storyColumns + ") VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(
		story.ID,
		story.Author.ID,
		story.Author.DisplayName,
		story.Author.Image,
		story.MediaType,
		story.MediaRef,
		story.Background,
		story.Caption,
		story.VideoDuration,
		story.CreatedAt,
		story.ExpiresAt,
		story.Privacy,
		story.Highlighted,
	)

	return err
}

// GetStory returns a story by ID, expired stories included so highlights stay
// viewable.
func (b *Backend) GetStory(id string) (*Story, error) {
	stmt, err := b.db.Prepare("SELECT " + storyColumns + " FROM stories WHERE id = $1;")
	if err != nil {
		return nil, err
	}

	story, err := scanStory(stmt.QueryRow(id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStoryNotFound
		}

		return nil, err
	}

	err = b.loadEngagement(story)
	if err != nil {
		return nil, err
	}

	return story, nil
}

// GetStoriesForAudience returns all active stories the viewer is allowed to
// see. Every call runs a fresh query, nothing is cached.
func (b *Backend) GetStoriesForAudience(viewer int, now int64) ([]*Story, error) {
	stmt, err := b.db.Prepare(`SELECT ` + storyColumns + ` FROM stories
		WHERE expires_at > $2 AND (
			privacy = 'public'
			OR user_id = $1
			OR (privacy = 'friends-only' AND user_id IN (
				SELECT user_id AS id FROM followers WHERE follower = $1
				INTERSECT
				SELECT follower AS id FROM followers WHERE user_id = $1
			))
		)
		ORDER BY user_id, created_at;`)
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(viewer, now)
	if err != nil {
		return nil, err
	}

	result := make([]*Story, 0)

	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, err
		}

		result = append(result, story)
	}

	for _, story := range result {
		err = b.loadEngagement(story)
		if err != nil {
			return nil, err
		}
	}

	return result, nil
}

// DeleteStory removes a story, only the author is allowed to.
func (b *Backend) DeleteStory(id string, requester int) error {
	err := b.ensureOwner(id, requester)
	if err != nil {
		return err
	}

	stmt, err := b.db.Prepare("DELETE FROM stories WHERE id = $1;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(id)
	return err
}

// SetHighlighted toggles the highlight flag, only the author is allowed to.
func (b *Backend) SetHighlighted(id string, requester int, highlighted bool) error {
	err := b.ensureOwner(id, requester)
	if err != nil {
		return err
	}

	stmt, err := b.db.Prepare("UPDATE stories SET highlighted = $2 WHERE id = $1;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(id, highlighted)
	return err
}

// AddViewer records that a user saw a story. Author self-views are skipped and
// repeat views are absorbed, calling this twice has the same effect as once.
func (b *Backend) AddViewer(id string, viewer int) error {
	stmt, err := b.db.Prepare(`INSERT INTO story_viewers (story_id, user_id)
		SELECT id, $2 FROM stories WHERE id = $1 AND user_id != $2
		ON CONFLICT (story_id, user_id) DO NOTHING;`)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(id, viewer)
	return err
}

// AddReaction upserts the reaction for a (user, emoji) pair, a repeat reaction
// only refreshes reacted_at.
func (b *Backend) AddReaction(id string, user int, emoji string, reactedAt int64) error {
	stmt, err := b.db.Prepare(`INSERT INTO story_reactions (story_id, user_id, emoji, reacted_at) VALUES ($1, $2, $3, $4)
		ON CONFLICT (story_id, user_id, emoji) DO UPDATE SET reacted_at = $4;`)
	if err != nil {
		return err
	}

	_, err = stmt.Exec(id, user, emoji, reactedAt)
	return err
}

// RemoveReaction deletes a reaction, removing one that is absent is not an error.
func (b *Backend) RemoveReaction(id string, user int, emoji string) error {
	stmt, err := b.db.Prepare("DELETE FROM story_reactions WHERE story_id = $1 AND user_id = $2 AND emoji = $3;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(id, user, emoji)
	return err
}

// RemoveAllReactionsByUser deletes every reaction a user left on a story.
func (b *Backend) RemoveAllReactionsByUser(id string, user int) error {
	stmt, err := b.db.Prepare("DELETE FROM story_reactions WHERE story_id = $1 AND user_id = $2;")
	if err != nil {
		return err
	}

	_, err = stmt.Exec(id, user)
	return err
}

// GetReactions returns the current reactions on a story.
func (b *Backend) GetReactions(id string) ([]Reaction, error) {
	stmt, err := b.db.Prepare("SELECT user_id, emoji, reacted_at FROM story_reactions WHERE story_id = $1 ORDER BY reacted_at;")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(id)
	if err != nil {
		return nil, err
	}

	result := make([]Reaction, 0)

	for rows.Next() {
		reaction := Reaction{}

		err := rows.Scan(&reaction.UserID, &reaction.Emoji, &reaction.ReactedAt)
		if err != nil {
			return nil, err
		}

		result = append(result, reaction)
	}

	return result, nil
}

// DeleteExpired deletes expired stories that are not highlighted and returns
// their media refs so the files can be cleaned up. Highlighted stories outlive
// their expiry for retrospective viewing.
func (b *Backend) DeleteExpired(now int64) ([]string, error) {
	stmt, err := b.db.Prepare("DELETE FROM stories WHERE expires_at <= $1 AND highlighted = false RETURNING media_ref;")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(now)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0)

	for rows.Next() {
		var ref string

		err := rows.Scan(&ref)
		if err != nil {
			continue
		}

		if ref == "" {
			continue
		}

		result = append(result, ref)
	}

	return result, nil
}

func (b *Backend) ensureOwner(id string, requester int) error {
	stmt, err := b.db.Prepare("SELECT user_id FROM stories WHERE id = $1;")
	if err != nil {
		return err
	}

	var owner int
	err = stmt.QueryRow(id).Scan(&owner)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrStoryNotFound
		}

		return err
	}

	if owner != requester {
		return ErrPermissionDenied
	}

	return nil
}

func (b *Backend) loadEngagement(story *Story) error {
	viewers, err := b.getViewers(story.ID)
	if err != nil {
		return err
	}

	story.Viewers = viewers

	reactions, err := b.GetReactions(story.ID)
	if err != nil {
		return err
	}

	story.Reactions = reactions

	return nil
}

func (b *Backend) getViewers(id string) ([]int, error) {
	stmt, err := b.db.Prepare("SELECT user_id FROM story_viewers WHERE story_id = $1;")
	if err != nil {
		return nil, err
	}

	rows, err := stmt.Query(id)
	if err != nil {
		return nil, err
	}

	result := make([]int, 0)

	for rows.Next() {
		var viewer int

		err := rows.Scan(&viewer)
		if err != nil {
			return nil, err
		}

		result = append(result, viewer)
	}

	return result, nil
}

type scannable interface {
	Scan(dest ...interface{}) error
}

func scanStory(row scannable) (*Story, error) {
	story := &Story{}

	err := row.Scan(
		&story.ID,
		&story.Author.ID,
		&story.Author.DisplayName,
		&story.Author.Image,
		&story.MediaType,
		&story.MediaRef,
		&story.Background,
		&story.Caption,
		&story.VideoDuration,
		&story.CreatedAt,
		&story.ExpiresAt,
		&story.Privacy,
		&story.Highlighted,
	)
	if err != nil {
		return nil, err
	}

	return story, nil
}

func validate(story *Story) error {
	switch story.MediaType {
	case MediaTypeText:
		if story.Caption == "" {
			return ErrInvalidStory
		}
	case MediaTypeImage, MediaTypeVideo:
		if story.MediaRef == "" {
			return ErrInvalidStory
		}
	default:
		return ErrInvalidStory
	}

	if story.ExpiresAt <= story.CreatedAt {
		return ErrInvalidStory
	}

	switch story.Privacy {
	case PrivacyPublic, PrivacyFriends, PrivacyPrivate:
	default:
		return ErrInvalidStory
	}

	return nil
}
