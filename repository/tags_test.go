package repository

import (
	"fmt"
	"testing"
)

func TestCreateTag(t *testing.T) {
	db := newTestDB(t)

	tag, err := CreateTag(db, "  nature ")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if tag.Name != "nature" {
		t.Fatalf("tag name = %q, want %q", tag.Name, "nature")
	}

	again, err := CreateTag(db, "nature")
	if err != nil {
		t.Fatalf("create tag twice: %v", err)
	}
	if again.ID != tag.ID {
		t.Fatalf("second create produced a new row: %d vs %d", again.ID, tag.ID)
	}

	_, err = CreateTag(db, "   ")
	wantKind(t, err, KindValidation)
}

func TestGetTagByName(t *testing.T) {
	db := newTestDB(t)
	if _, err := CreateTag(db, "city"); err != nil {
		t.Fatalf("create tag: %v", err)
	}

	tag, err := GetTagByName(db, "city")
	if err != nil {
		t.Fatalf("get tag: %v", err)
	}
	if tag.Name != "city" {
		t.Fatalf("tag name = %q", tag.Name)
	}

	_, err = GetTagByName(db, "missing")
	wantKind(t, err, KindNotFound)
}

func TestUpdateTag(t *testing.T) {
	db := newTestDB(t)
	nature, err := CreateTag(db, "nature")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if _, err := CreateTag(db, "city"); err != nil {
		t.Fatalf("create tag: %v", err)
	}

	_, err = UpdateTag(db, nature.ID+100, "landscape")
	wantKind(t, err, KindNotFound)

	_, err = UpdateTag(db, nature.ID, "city")
	wantKind(t, err, KindConflict)

	_, err = UpdateTag(db, nature.ID, " ")
	wantKind(t, err, KindValidation)

	renamed, err := UpdateTag(db, nature.ID, "landscape")
	if err != nil {
		t.Fatalf("rename tag: %v", err)
	}
	if renamed.Name != "landscape" || renamed.ID != nature.ID {
		t.Fatalf("unexpected renamed tag: %+v", renamed)
	}

	// renaming to the current name is a no-op, not a conflict
	if _, err := UpdateTag(db, nature.ID, "landscape"); err != nil {
		t.Fatalf("rename to same name: %v", err)
	}
}

func TestDeleteTag(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	post := seedPost(t, db, owner, "sunset")
	tag, err := CreateTag(db, "nature")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}
	if _, err := AddTagToPost(db, post.ID, tag.ID); err != nil {
		t.Fatalf("attach tag: %v", err)
	}

	if _, err := DeleteTag(db, tag.ID); err != nil {
		t.Fatalf("delete tag: %v", err)
	}

	tags, err := PostTags(db, post)
	if err != nil {
		t.Fatalf("post tags: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("post still carries %d tags after delete", len(tags))
	}

	_, err = DeleteTag(db, tag.ID)
	wantKind(t, err, KindNotFound)
}

func TestAddTagToPost(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	post := seedPost(t, db, owner, "sunset")
	tag, err := CreateTag(db, "nature")
	if err != nil {
		t.Fatalf("create tag: %v", err)
	}

	_, err = AddTagToPost(db, post.ID+100, tag.ID)
	wantKind(t, err, KindNotFound)

	_, err = AddTagToPost(db, post.ID, tag.ID+100)
	wantKind(t, err, KindNotFound)

	updated, err := AddTagToPost(db, post.ID, tag.ID)
	if err != nil {
		t.Fatalf("attach tag: %v", err)
	}
	if len(updated.Tags) != 1 || updated.Tags[0].ID != tag.ID {
		t.Fatalf("unexpected tag list: %+v", updated.Tags)
	}

	_, err = AddTagToPost(db, post.ID, tag.ID)
	wantKind(t, err, KindConflict)
}

func TestAddTagToPostCap(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	post := seedPost(t, db, owner, "sunset")

	for i := 0; i < 5; i++ {
		tag, err := CreateTag(db, fmt.Sprintf("tag-%d", i))
		if err != nil {
			t.Fatalf("create tag %d: %v", i, err)
		}
		if _, err := AddTagToPost(db, post.ID, tag.ID); err != nil {
			t.Fatalf("attach tag %d: %v", i, err)
		}
	}

	extra, err := CreateTag(db, "one-too-many")
	if err != nil {
		t.Fatalf("create extra tag: %v", err)
	}
	_, err = AddTagToPost(db, post.ID, extra.ID)
	wantKind(t, err, KindValidation)

	tags, err := PostTags(db, post)
	if err != nil {
		t.Fatalf("post tags: %v", err)
	}
	if len(tags) != 5 {
		t.Fatalf("got %d tags, want 5", len(tags))
	}
}

func TestPostTagsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	owner := seedUser(t, db, "owner")
	post := seedPost(t, db, owner, "sunset")

	names := []string{"water", "sky", "boats"}
	// attach out of creation order; the result is the same set
	for _, name := range []string{"sky", "boats", "water"} {
		tag, err := CreateTag(db, name)
		if err != nil {
			t.Fatalf("create tag %q: %v", name, err)
		}
		if _, err := AddTagToPost(db, post.ID, tag.ID); err != nil {
			t.Fatalf("attach tag %q: %v", name, err)
		}
	}

	tags, err := PostTags(db, post)
	if err != nil {
		t.Fatalf("post tags: %v", err)
	}
	got := map[string]bool{}
	for _, tag := range tags {
		got[tag.Name] = true
	}
	if len(got) != len(names) {
		t.Fatalf("got %d tags, want %d", len(got), len(names))
	}
	for _, name := range names {
		if !got[name] {
			t.Fatalf("missing tag %q in %v", name, got)
		}
	}
}

func TestPostTagsNilPost(t *testing.T) {
	db := newTestDB(t)
	tags, err := PostTags(db, nil)
	if err != nil {
		t.Fatalf("post tags: %v", err)
	}
	if len(tags) != 0 {
		t.Fatalf("got %d tags, want 0", len(tags))
	}
}
