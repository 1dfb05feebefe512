package database

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/digitalaadhti/digital-aadhti-official/models"
)

// stepClock returns a strictly increasing time on every call.
type stepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

func newStepClock(step time.Duration) *stepClock {
	return &stepClock{now: time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC), step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(c.step)
	return c.now
}

func sequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// forEachBackend runs fn against a fresh memory store and a fresh SQLite store.
func forEachBackend(t *testing.T, fn func(t *testing.T, db Database), opts ...Option) {
	t.Helper()

	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemory(opts...))
	})

	t.Run("sqlite", func(t *testing.T) {
		gdb, err := OpenSQLite("")
		if err != nil {
			t.Fatalf("OpenSQLite: %v", err)
		}
		db, err := NewSQL(gdb, opts...)
		if err != nil {
			t.Fatalf("NewSQL: %v", err)
		}
		t.Cleanup(func() { db.Close() })
		fn(t, db)
	})
}

func newPost(title string) *models.Post {
	return &models.Post{Title: title, Content: "# " + title, Excerpt: title, Category: "General"}
}

func mustAddPost(t *testing.T, db Database, post *models.Post) *models.Post {
	t.Helper()
	if err := db.PostRepo().Add(context.Background(), post); err != nil {
		t.Fatalf("Add post: %v", err)
	}
	return post
}

func TestPostRepoAddAndFind(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database) {
		ctx := context.Background()

		post := newPost("First")
		post.Subtitle = strPtr("sub")
		mustAddPost(t, db, post)

		if post.ID == "" {
			t.Fatal("expected an id to be assigned")
		}
		if !post.CreatedAt.Equal(post.UpdatedAt) {
			t.Fatalf("createdAt %v != updatedAt %v", post.CreatedAt, post.UpdatedAt)
		}

		got, err := db.PostRepo().FindByID(ctx, post.ID)
		if err != nil {
			t.Fatalf("FindByID: %v", err)
		}
		if got == nil {
			t.Fatal("expected post to be found")
		}
		if got.Title != "First" || got.Subtitle == nil || *got.Subtitle != "sub" {
			t.Fatalf("unexpected post: %+v", got)
		}
		if got.FeaturedImage != nil {
			t.Fatalf("featuredImage should stay nil, got %q", *got.FeaturedImage)
		}
		if !got.CreatedAt.Equal(post.CreatedAt) {
			t.Fatalf("createdAt round trip: got %v want %v", got.CreatedAt, post.CreatedAt)
		}

		missing, err := db.PostRepo().FindByID(ctx, "does-not-exist")
		if err != nil {
			t.Fatalf("FindByID missing: %v", err)
		}
		if missing != nil {
			t.Fatalf("expected nil for unknown id, got %+v", missing)
		}
	}, WithClock(newStepClock(time.Second).Now))
}

func TestPostRepoFindAllNewestFirst(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database) {
		a := mustAddPost(t, db, newPost("A"))
		b := mustAddPost(t, db, newPost("B"))
		c := mustAddPost(t, db, newPost("C"))

		posts, err := db.PostRepo().FindAll(context.Background())
		if err != nil {
			t.Fatalf("FindAll: %v", err)
		}
		want := []string{c.ID, b.ID, a.ID}
		if len(posts) != len(want) {
			t.Fatalf("got %d posts, want %d", len(posts), len(want))
		}
		for i, id := range want {
			if posts[i].ID != id {
				t.Fatalf("position %d: got %s, want %s", i, posts[i].ID, id)
			}
		}
	}, WithClock(newStepClock(time.Minute).Now))
}

func TestPostRepoFindAllTiesKeepInsertionOrder(t *testing.T) {
	fixed := time.Date(2025, time.February, 2, 8, 0, 0, 0, time.UTC)

	forEachBackend(t, func(t *testing.T, db Database) {
		a := mustAddPost(t, db, newPost("A"))
		b := mustAddPost(t, db, newPost("B"))

		posts, err := db.PostRepo().FindAll(context.Background())
		if err != nil {
			t.Fatalf("FindAll: %v", err)
		}
		if len(posts) != 2 || posts[0].ID != a.ID || posts[1].ID != b.ID {
			t.Fatalf("expected insertion order among equal timestamps, got %v, %v", posts[0].ID, posts[1].ID)
		}
	}, WithClock(func() time.Time { return fixed }))
}

func TestPostRepoUpdate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database) {
		ctx := context.Background()
		post := newPost("Original")
		post.FeaturedImage = strPtr("https://example.com/a.png")
		mustAddPost(t, db, post)

		title := "Renamed"
		empty := ""
		updated, err := db.PostRepo().Update(ctx, post.ID, models.PostPatch{Title: &title, FeaturedImage: &empty})
		if err != nil {
			t.Fatalf("Update: %v", err)
		}
		if updated == nil {
			t.Fatal("expected updated post")
		}
		if updated.Title != "Renamed" {
			t.Fatalf("title = %q", updated.Title)
		}
		if updated.Content != post.Content || updated.Category != post.Category {
			t.Fatalf("untouched fields changed: %+v", updated)
		}
		if updated.FeaturedImage != nil {
			t.Fatalf("empty featuredImage should clear it, got %q", *updated.FeaturedImage)
		}
		if updated.ID != post.ID || !updated.CreatedAt.Equal(post.CreatedAt) {
			t.Fatalf("identity changed: %+v", updated)
		}
		if !updated.UpdatedAt.After(post.UpdatedAt) {
			t.Fatalf("updatedAt %v not after %v", updated.UpdatedAt, post.UpdatedAt)
		}

		stored, err := db.PostRepo().FindByID(ctx, post.ID)
		if err != nil || stored == nil || stored.Title != "Renamed" {
			t.Fatalf("update not persisted: %+v, %v", stored, err)
		}

		none, err := db.PostRepo().Update(ctx, "missing", models.PostPatch{Title: &title})
		if err != nil {
			t.Fatalf("Update missing: %v", err)
		}
		if none != nil {
			t.Fatalf("expected nil for unknown id, got %+v", none)
		}
	}, WithClock(newStepClock(time.Second).Now))
}

func TestPostRepoDeleteLeavesComments(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database) {
		ctx := context.Background()
		post := mustAddPost(t, db, newPost("Doomed"))

		comment := &models.Comment{PostID: post.ID, Author: "Ann", Email: "ann@example.com", Content: "hi"}
		if err := db.CommentRepo().Add(ctx, comment); err != nil {
			t.Fatalf("Add comment: %v", err)
		}

		deleted, err := db.PostRepo().Delete(ctx, post.ID)
		if err != nil || !deleted {
			t.Fatalf("first delete: deleted=%v err=%v", deleted, err)
		}
		deleted, err = db.PostRepo().Delete(ctx, post.ID)
		if err != nil || deleted {
			t.Fatalf("second delete: deleted=%v err=%v", deleted, err)
		}

		comments, err := db.CommentRepo().FindByPostID(ctx, post.ID)
		if err != nil {
			t.Fatalf("FindByPostID: %v", err)
		}
		if len(comments) != 1 {
			t.Fatalf("comments should survive post deletion, got %d", len(comments))
		}
	}, WithClock(newStepClock(time.Second).Now))
}

func TestCommentRepoOrderingAndFiltering(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database) {
		ctx := context.Background()

		var added []*models.Comment
		for i, postID := range []string{"p1", "p2", "p1", "p1"} {
			c := &models.Comment{PostID: postID, Author: "A", Email: "a@example.com", Content: fmt.Sprintf("c%d", i)}
			if err := db.CommentRepo().Add(ctx, c); err != nil {
				t.Fatalf("Add: %v", err)
			}
			added = append(added, c)
		}

		comments, err := db.CommentRepo().FindByPostID(ctx, "p1")
		if err != nil {
			t.Fatalf("FindByPostID: %v", err)
		}
		want := []string{added[0].ID, added[2].ID, added[3].ID}
		if len(comments) != len(want) {
			t.Fatalf("got %d comments, want %d", len(comments), len(want))
		}
		for i, id := range want {
			if comments[i].ID != id {
				t.Fatalf("position %d: got %s want %s", i, comments[i].ID, id)
			}
			if comments[i].PostID != "p1" {
				t.Fatalf("comment from another post leaked: %+v", comments[i])
			}
		}

		empty, err := db.CommentRepo().FindByPostID(ctx, "nobody")
		if err != nil {
			t.Fatalf("FindByPostID empty: %v", err)
		}
		if empty == nil || len(empty) != 0 {
			t.Fatalf("expected empty non-nil slice, got %#v", empty)
		}
	}, WithClock(newStepClock(time.Second).Now), WithIDGenerator(sequentialIDs()))
}

func TestUserRepo(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database) {
		ctx := context.Background()

		first := &models.User{Username: "writer", Password: "hash-1"}
		second := &models.User{Username: "writer", Password: "hash-2"}
		for _, u := range []*models.User{first, second} {
			if err := db.UserRepo().Add(ctx, u); err != nil {
				t.Fatalf("Add user: %v", err)
			}
		}
		if first.ID == "" || first.ID == second.ID {
			t.Fatalf("expected distinct ids, got %q and %q", first.ID, second.ID)
		}

		got, err := db.UserRepo().FindByID(ctx, second.ID)
		if err != nil || got == nil || got.Password != "hash-2" {
			t.Fatalf("FindByID: %+v, %v", got, err)
		}

		byName, err := db.UserRepo().FindByUsername(ctx, "writer")
		if err != nil || byName == nil || byName.ID != first.ID {
			t.Fatalf("FindByUsername should return the first registered user: %+v, %v", byName, err)
		}

		none, err := db.UserRepo().FindByUsername(ctx, "reader")
		if err != nil || none != nil {
			t.Fatalf("FindByUsername unknown: %+v, %v", none, err)
		}
		none, err = db.UserRepo().FindByID(ctx, "missing")
		if err != nil || none != nil {
			t.Fatalf("FindByID unknown: %+v, %v", none, err)
		}
	})
}

func TestSampleContentIsComplete(t *testing.T) {
	want := map[string][]string{
		"1": {
			"> \"Digital Aadhti represents the future of agricultural market management",
			"Modern agricultural market platforms offer several advantages:",
			"## The Digital Aadhti Advantage",
			"### Market Intelligence",
		},
		"2": {
			"Understanding different commission structures and calculation methods is crucial",
			"## Digital Aadhti's Commission Management Features",
			"- Tax-ready documentation",
			"Digital Aadhti simplifies these processes",
		},
		"3": {
			"Digital Aadhti provides comprehensive analytics and reporting tools",
			"### Seasonal Patterns",
			"## Advanced Reporting Features",
			"### Financial Dashboards",
		},
	}

	forEachBackend(t, func(t *testing.T, db Database) {
		ctx := context.Background()
		if err := db.Seed(ctx, SamplePosts(), SampleComments()); err != nil {
			t.Fatalf("Seed: %v", err)
		}

		for id, phrases := range want {
			post, err := db.PostRepo().FindByID(ctx, id)
			if err != nil {
				t.Fatalf("FindByID(%s): %v", id, err)
			}
			for _, phrase := range phrases {
				if !strings.Contains(post.Content, phrase) {
					t.Fatalf("post %s content is missing %q", id, phrase)
				}
			}
		}
	})
}

func TestSeedSampleData(t *testing.T) {
	forEachBackend(t, func(t *testing.T, db Database) {
		ctx := context.Background()
		if err := db.Seed(ctx, SamplePosts(), SampleComments()); err != nil {
			t.Fatalf("Seed: %v", err)
		}

		posts, err := db.PostRepo().FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll: %v", err)
		}
		if len(posts) != 3 {
			t.Fatalf("got %d posts, want 3", len(posts))
		}
		for i, id := range []string{"1", "2", "3"} {
			if posts[i].ID != id {
				t.Fatalf("position %d: got %s want %s", i, posts[i].ID, id)
			}
		}

		comments, err := db.CommentRepo().FindByPostID(ctx, "1")
		if err != nil {
			t.Fatalf("FindByPostID: %v", err)
		}
		if len(comments) != 2 || comments[0].ID != "2" || comments[1].ID != "1" {
			t.Fatalf("seeded comments not ordered oldest first: %+v", comments)
		}

		// new posts land on top of the seeded ones
		fresh := mustAddPost(t, db, newPost("Fresh"))
		posts, err = db.PostRepo().FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll: %v", err)
		}
		if posts[0].ID != fresh.ID {
			t.Fatalf("expected newest post first, got %s", posts[0].ID)
		}
	})
}

func TestRepoResultsAreCopies(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()

	post := mustAddPost(t, db, newPost("Original"))
	post.Title = "mutated by caller"

	got, err := db.PostRepo().FindByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.Title != "Original" {
		t.Fatalf("store aliased caller memory, title = %q", got.Title)
	}

	got.Title = "mutated result"
	again, _ := db.PostRepo().FindByID(ctx, post.ID)
	if again.Title != "Original" {
		t.Fatalf("store aliased returned memory, title = %q", again.Title)
	}
}

func TestMemoryConcurrentAdds(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = db.PostRepo().Add(ctx, newPost(fmt.Sprintf("post %d", i)))
		}(i)
	}
	wg.Wait()

	posts, err := db.PostRepo().FindAll(ctx)
	if err != nil {
		t.Fatalf("FindAll: %v", err)
	}
	if len(posts) != 50 {
		t.Fatalf("got %d posts, want 50", len(posts))
	}
}

func TestOpen(t *testing.T) {
	for _, kind := range []string{"", "memory", "sqlite", "SQLite"} {
		db, err := Open(kind)
		if err != nil {
			t.Fatalf("Open(%q): %v", kind, err)
		}
		if db.PostRepo() == nil || db.CommentRepo() == nil || db.UserRepo() == nil {
			t.Fatalf("Open(%q) returned incomplete database", kind)
		}
		if err := db.Close(); err != nil {
			t.Fatalf("Close(%q): %v", kind, err)
		}
	}

	if _, err := Open("postgres"); err == nil {
		t.Fatal("expected an error for an unsupported DB_TYPE")
	}
}

func TestMemoryFindAllDuringUpdates(t *testing.T) {
	db := NewMemory()
	ctx := context.Background()
	post := mustAddPost(t, db, newPost("Title 0"))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 2000; i++ {
			title := fmt.Sprintf("Title %d", i)
			subtitle := fmt.Sprintf("Subtitle %d", i)
			if _, err := db.PostRepo().Update(ctx, post.ID, models.PostPatch{Title: &title, Subtitle: &subtitle}); err != nil {
				t.Errorf("Update: %v", err)
				return
			}
		}
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		posts, err := db.PostRepo().FindAll(ctx)
		if err != nil {
			t.Fatalf("FindAll: %v", err)
		}
		if len(posts) != 1 || posts[0].ID != post.ID {
			t.Fatalf("unexpected listing: %+v", posts)
		}
		// a listed record is never half updated
		got := posts[0]
		if got.Subtitle != nil && *got.Subtitle != "Subtitle "+got.Title[len("Title "):] {
			t.Fatalf("torn record: title %q subtitle %q", got.Title, *got.Subtitle)
		}
	}
}
