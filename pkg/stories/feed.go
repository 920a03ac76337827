package stories

import (
	"sort"
	"time"
)

// Group contains all of one author's active stories, ordered for playback.
// Groups are derived for display, they are never persisted.
type Group struct {
	Author  Author   `json:"author"`
	Stories []*Story `json:"stories"`
}

// HasUnseen reports whether the group contains a story the viewer has not seen yet.
func (g Group) HasUnseen(viewer int) bool {
	for _, story := range g.Stories {
		if !story.SeenBy(viewer) {
			return true
		}
	}

	return false
}

// SeenBy reports whether a viewer is recorded on the story.
func (s *Story) SeenBy(viewer int) bool {
	for _, id := range s.Viewers {
		if id == viewer {
			return true
		}
	}

	return false
}

// BuildFeed partitions active stories into per-author groups for the viewer.
// Stories inside a group are ordered oldest first, groups with unseen stories
// come before fully seen ones, and groups of equal priority are ordered by
// their most recent story.
func BuildFeed(input []*Story, viewer int, now time.Time) []Group {
	byAuthor := make(map[int]*Group)
	authors := make([]int, 0)

	for _, story := range input {
		if !IsActive(story, now) {
			continue
		}

		group, ok := byAuthor[story.Author.ID]
		if !ok {
			group = &Group{Author: story.Author, Stories: make([]*Story, 0)}
			byAuthor[story.Author.ID] = group
			authors = append(authors, story.Author.ID)
		}

		group.Stories = append(group.Stories, story)
	}

	feed := make([]Group, 0)
	for _, author := range authors {
		group := byAuthor[author]

		sort.SliceStable(group.Stories, func(i, j int) bool {
			a, b := group.Stories[i], group.Stories[j]
			if a.CreatedAt == b.CreatedAt {
				return a.ID < b.ID
			}

			return a.CreatedAt < b.CreatedAt
		})

		feed = append(feed, *group)
	}

	sort.SliceStable(feed, func(i, j int) bool {
		a, b := feed[i], feed[j]

		unseenA, unseenB := a.HasUnseen(viewer), b.HasUnseen(viewer)
		if unseenA != unseenB {
			return unseenA
		}

		return latestActivity(a) > latestActivity(b)
	})

	return feed
}

func latestActivity(group Group) int64 {
	// stories are ordered oldest first at this point
	return group.Stories[len(group.Stories)-1].CreatedAt
}
