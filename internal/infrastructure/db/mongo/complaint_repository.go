package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/resolvenow/complaint-system/internal/core/domain"
	"github.com/resolvenow/complaint-system/internal/core/ports"
)

const collectionComplaints = "complaints"

type ComplaintRepository struct {
	col *mongo.Collection
}

func NewComplaintRepository(db *mongo.Database) *ComplaintRepository {
	return &ComplaintRepository{col: db.Collection(collectionComplaints)}
}

// Create inserts a new complaint document.
func (r *ComplaintRepository) Create(ctx context.Context, c *domain.Complaint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.InsertOne(ctx, c)
	return err
}

// FindByID retrieves a complaint by id.
func (r *ComplaintRepository) FindByID(ctx context.Context, id string) (*domain.Complaint, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Complaint
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrComplaintNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Update replaces the stored complaint document. It never upserts: an
// unknown id yields domain.ErrComplaintNotFound.
func (r *ComplaintRepository) Update(ctx context.Context, c *domain.Complaint) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": c.ID}, c)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrComplaintNotFound
	}
	return nil
}

// List returns a page of complaints matching filter in insertion order
// (created_at ascending) and the total match count.
func (r *ComplaintRepository) List(ctx context.Context, f ports.ListComplaintsFilter) ([]*domain.Complaint, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := buildListFilter(f)

	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	if f.Limit > 0 {
		opts.SetLimit(int64(f.Limit))
		if f.Page > 1 {
			opts.SetSkip(int64((f.Page - 1) * f.Limit))
		}
	}

	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cursor.Close(ctx)

	var items []*domain.Complaint
	if err := cursor.All(ctx, &items); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func buildListFilter(f ports.ListComplaintsFilter) bson.M {
	filter := bson.M{}
	if f.UserID != "" {
		filter["user_id"] = f.UserID
	}
	if f.AssignedAgentID != "" {
		scope := []bson.M{{"assigned_agent_id": f.AssignedAgentID}}
		if f.IncludePending {
			scope = append(scope, bson.M{"status": string(domain.StatusPending)})
		}
		filter["$or"] = scope
	}
	if f.Status != "" {
		filter["status"] = f.Status
	}
	if f.Priority != "" {
		filter["priority"] = f.Priority
	}
	if f.Category != "" {
		filter["category"] = f.Category
	}
	if f.Search != "" {
		regex := bson.M{"$regex": f.Search, "$options": "i"}
		search := []bson.M{
			{"title": regex},
			{"description": regex},
			{"user_name": regex},
		}
		if existing, ok := filter["$or"]; ok {
			filter["$and"] = []bson.M{
				{"$or": existing},
				{"$or": search},
			}
			delete(filter, "$or")
		} else {
			filter["$or"] = search
		}
	}
	return filter
}

// CountByStatus aggregates complaint counts per lifecycle status.
func (r *ComplaintRepository) CountByStatus(ctx context.Context) (map[domain.ComplaintStatus]int64, error) {
	groups, err := r.countBy(ctx, "$status")
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.ComplaintStatus]int64, len(groups))
	for k, v := range groups {
		counts[domain.ComplaintStatus(k)] = v
	}
	return counts, nil
}

// CountByPriority aggregates complaint counts per priority label.
func (r *ComplaintRepository) CountByPriority(ctx context.Context) (map[domain.Priority]int64, error) {
	groups, err := r.countBy(ctx, "$priority")
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.Priority]int64, len(groups))
	for k, v := range groups {
		counts[domain.Priority(k)] = v
	}
	return counts, nil
}

func (r *ComplaintRepository) countBy(ctx context.Context, field string) (map[string]int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cursor, err := r.col.Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{"_id": field, "count": bson.M{"$sum": 1}}}},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		ID    string `bson:"_id"`
		Count int64  `bson:"count"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.ID] = row.Count
	}
	return counts, nil
}

// CountAssignedTo counts open complaints (not resolved or closed) assigned
// to the given agent.
func (r *ComplaintRepository) CountAssignedTo(ctx context.Context, agentID string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{
		"assigned_agent_id": agentID,
		"status": bson.M{"$nin": []string{
			string(domain.StatusResolved),
			string(domain.StatusClosed),
		}},
	})
}

// EnsureIndexes creates the indexes the list and scope queries rely on.
func (r *ComplaintRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_agent_id", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "created_at", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
