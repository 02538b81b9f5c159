package workflow_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/civichub/internal/app/workflow"
	"github.com/dalemusser/civichub/internal/domain/models"
	"github.com/dalemusser/civichub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func seedParentDebate(t *testing.T, f *testutil.Fixtures, clubID primitive.ObjectID) models.ContentItem {
	t.Helper()
	ctx := testutil.TestContext(t)
	return f.CreateContent(ctx, models.KindDebate, models.ContentItem{
		Title:           "Should the library expand hours",
		Club:            &clubID,
		CreatedBy:       primitive.NewObjectID(),
		PublishedStatus: models.StatusPublished,
		Extra:           map[string]interface{}{"significance_of_debate": "civic access"},
	})
}

func TestAdoptByModeratorPublishesAndAnnotatesParent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	requireTransactions(t, db)
	ctx := testutil.TestContext(t)
	svc := newService(t, db)
	f := testutil.NewFixtures(t, db)

	sourceClub := f.CreateClub(ctx, "Library Friends", primitive.NewObjectID())
	targetClub := f.CreateClub(ctx, "Neighborhood Watch", primitive.NewObjectID())
	parent := seedParentDebate(t, f, sourceClub.ID)

	adopter := f.CreateUser(ctx, "Mo", "Derator", "mo@test.local")
	f.CreateClubMember(ctx, targetClub.ID, adopter.ID, models.RoleModerator, models.StatusMember)

	res, err := svc.Adopt(ctx, models.KindDebate, parent.ID,
		workflow.OwnerContext{Club: &targetClub.ID}, adopter.ID)
	if err != nil {
		t.Fatalf("Adopt: %v", err)
	}
	child := res.Item

	if res.Message != "adopted and published" {
		t.Errorf("message = %q, want %q", res.Message, "adopted and published")
	}
	if child.PublishedStatus != models.StatusPublished {
		t.Errorf("child status = %q, want published", child.PublishedStatus)
	}
	if child.Club == nil || *child.Club != targetClub.ID {
		t.Error("child should be owned by the adopting club")
	}
	if child.AdoptedFrom == nil || *child.AdoptedFrom != parent.ID {
		t.Error("child should record the adoption source")
	}
	if child.CreatedBy != adopter.ID {
		t.Error("child creator should be the adopter")
	}
	if child.PublishedBy != nil {
		t.Error("adoption must not inherit or stamp publishedBy")
	}
	if len(child.AdoptedClubs) != 0 || len(child.AdoptedNodes) != 0 {
		t.Error("child should start its own empty adoption history")
	}
	if got := child.Extra["significance_of_debate"]; got != "civic access" {
		t.Errorf("kind-specific field lost in clone: %v", got)
	}

	fresh, err := svc.Contents().GetByID(ctx, models.KindDebate, parent.ID)
	if err != nil {
		t.Fatalf("reload parent: %v", err)
	}
	if !fresh.AdoptedByClub(targetClub.ID) {
		t.Error("parent should record the adopting club")
	}
}

func TestAdoptTwiceAnnotatesParentOnce(t *testing.T) {
	db := testutil.SetupTestDB(t)
	requireTransactions(t, db)
	ctx := testutil.TestContext(t)
	svc := newService(t, db)
	f := testutil.NewFixtures(t, db)

	sourceClub := f.CreateClub(ctx, "Library Friends", primitive.NewObjectID())
	targetClub := f.CreateClub(ctx, "Neighborhood Watch", primitive.NewObjectID())
	parent := seedParentDebate(t, f, sourceClub.ID)

	for i := 0; i < 2; i++ {
		adopter := f.CreateUser(ctx, "Ad", "Min", primitive.NewObjectID().Hex()+"@test.local")
		f.CreateClubMember(ctx, targetClub.ID, adopter.ID, models.RoleAdmin, models.StatusMember)
		if _, err := svc.Adopt(ctx, models.KindDebate, parent.ID,
			workflow.OwnerContext{Club: &targetClub.ID}, adopter.ID); err != nil {
			t.Fatalf("Adopt #%d: %v", i+1, err)
		}
	}

	fresh, err := svc.Contents().GetByID(ctx, models.KindDebate, parent.ID)
	if err != nil {
		t.Fatalf("reload parent: %v", err)
	}
	count := 0
	for _, a := range fresh.AdoptedClubs {
		if a.ClubID == targetClub.ID {
			count++
		}
	}
	if count != 1 {
		t.Errorf("parent has %d adoption entries for the club, want exactly 1", count)
	}
}

func TestAdoptByPlainMemberProposesWithoutContext(t *testing.T) {
	db := testutil.SetupTestDB(t)
	requireTransactions(t, db)
	ctx := testutil.TestContext(t)
	svc := newService(t, db)
	f := testutil.NewFixtures(t, db)

	sourceClub := f.CreateClub(ctx, "Library Friends", primitive.NewObjectID())
	targetNode := f.CreateNode(ctx, "Downtown", primitive.NewObjectID())
	parent := seedParentDebate(t, f, sourceClub.ID)

	adopter := f.CreateUser(ctx, "Mem", "Ber", "mem@test.local")
	f.CreateNodeMember(ctx, targetNode.ID, adopter.ID, models.RoleMember, models.StatusMember)

	res, err := svc.Adopt(ctx, models.KindDebate, parent.ID,
		workflow.OwnerContext{Node: &targetNode.ID}, adopter.ID)
	if err != nil {
		t.Fatalf("Adopt: %v", err)
	}
	child := res.Item

	if res.Message != "adoption proposed for review" {
		t.Errorf("message = %q, want %q", res.Message, "adoption proposed for review")
	}
	if child.PublishedStatus != models.StatusProposed {
		t.Errorf("child status = %q, want proposed", child.PublishedStatus)
	}
	if child.Club != nil || child.Node != nil {
		t.Error("unprivileged adoption copy must carry no owner context yet")
	}

	fresh, err := svc.Contents().GetByID(ctx, models.KindDebate, parent.ID)
	if err != nil {
		t.Fatalf("reload parent: %v", err)
	}
	if fresh.AdoptedByNode(targetNode.ID) {
		t.Error("parent must not be annotated until the proposal is published")
	}
}

func TestAdoptRollsBackWhenChildInsertFails(t *testing.T) {
	db := testutil.SetupTestDB(t)
	requireTransactions(t, db)
	ctx := testutil.TestContext(t)
	svc := newService(t, db)
	f := testutil.NewFixtures(t, db)

	sourceClub := f.CreateClub(ctx, "Library Friends", primitive.NewObjectID())
	targetClub := f.CreateClub(ctx, "Neighborhood Watch", primitive.NewObjectID())
	parent := seedParentDebate(t, f, sourceClub.ID)

	adopter := f.CreateUser(ctx, "Mo", "Derator", "mo@test.local")
	f.CreateClubMember(ctx, targetClub.ID, adopter.ID, models.RoleModerator, models.StatusMember)

	// Make the clone's insert fail: a unique index on adopted_from plus
	// a document already holding the parent's id means the child write
	// inside the transaction hits a duplicate key.
	debates := db.Collection("debates")
	_, err := debates.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "adopted_from", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("create index: %v", err)
	}
	if _, err := debates.InsertOne(ctx, bson.M{
		"_id":          primitive.NewObjectID(),
		"title":        "earlier clone",
		"adopted_from": parent.ID,
	}); err != nil {
		t.Fatalf("insert decoy: %v", err)
	}

	_, err = svc.Adopt(ctx, models.KindDebate, parent.ID,
		workflow.OwnerContext{Club: &targetClub.ID}, adopter.ID)
	if !errors.Is(err, workflow.ErrTransaction) {
		t.Fatalf("error = %v, want ErrTransaction", err)
	}

	// The parent annotation committed in the same transaction must be
	// gone with it.
	fresh, err := svc.Contents().GetByID(ctx, models.KindDebate, parent.ID)
	if err != nil {
		t.Fatalf("reload parent: %v", err)
	}
	if fresh.AdoptedByClub(targetClub.ID) {
		t.Error("parent annotation survived an aborted adoption")
	}
	n, err := debates.CountDocuments(ctx, bson.M{"created_by": adopter.ID})
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 0 {
		t.Errorf("found %d orphaned clones after the aborted adoption", n)
	}
}

func TestAdoptErrors(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := testutil.TestContext(t)
	svc := newService(t, db)
	f := testutil.NewFixtures(t, db)

	sourceClub := f.CreateClub(ctx, "Library Friends", primitive.NewObjectID())
	targetClub := f.CreateClub(ctx, "Neighborhood Watch", primitive.NewObjectID())
	targetNode := f.CreateNode(ctx, "Downtown", primitive.NewObjectID())
	parent := seedParentDebate(t, f, sourceClub.ID)

	outsider := f.CreateUser(ctx, "Out", "Sider", "out@test.local")

	t.Run("not a member of the target", func(t *testing.T) {
		_, err := svc.Adopt(ctx, models.KindDebate, parent.ID,
			workflow.OwnerContext{Club: &targetClub.ID}, outsider.ID)
		if !errors.Is(err, workflow.ErrNotAMember) {
			t.Errorf("error = %v, want ErrNotAMember", err)
		}
	})

	t.Run("both club and node", func(t *testing.T) {
		_, err := svc.Adopt(ctx, models.KindDebate, parent.ID,
			workflow.OwnerContext{Club: &targetClub.ID, Node: &targetNode.ID}, outsider.ID)
		if !errors.Is(err, workflow.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("unknown kind", func(t *testing.T) {
		_, err := svc.Adopt(ctx, "poll", parent.ID,
			workflow.OwnerContext{Club: &targetClub.ID}, outsider.ID)
		if !errors.Is(err, workflow.ErrValidation) {
			t.Errorf("error = %v, want ErrValidation", err)
		}
	})

	t.Run("parent does not exist", func(t *testing.T) {
		requireTransactions(t, db)
		member := f.CreateUser(ctx, "Mem", "Ber", "mem2@test.local")
		f.CreateClubMember(ctx, targetClub.ID, member.ID, models.RoleAdmin, models.StatusMember)
		_, err := svc.Adopt(ctx, models.KindDebate, primitive.NewObjectID(),
			workflow.OwnerContext{Club: &targetClub.ID}, member.ID)
		if !errors.Is(err, workflow.ErrNotFound) {
			t.Errorf("error = %v, want ErrNotFound", err)
		}
	})
}
