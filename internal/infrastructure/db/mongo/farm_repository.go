package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chiraitori/farm-management-api/internal/core/domain"
	"github.com/chiraitori/farm-management-api/internal/core/ports"
)

const collectionFarms = "farms"

type FarmRepository struct {
	col *mongo.Collection
}

func NewFarmRepository(db *mongo.Database) *FarmRepository {
	return &FarmRepository{col: db.Collection(collectionFarms)}
}

type mongoFarm struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Location string             `bson:"location"`
	Size     float64            `bson:"size"`
	Stuff    []string           `bson:"stuff,omitempty"`
	Manager  primitive.ObjectID `bson:"manager,omitempty"`
}

func (mf *mongoFarm) toDomain() *domain.Farm {
	f := &domain.Farm{
		ID:       mf.ID.Hex(),
		Name:     mf.Name,
		Location: mf.Location,
		Size:     mf.Size,
		Stuff:    mf.Stuff,
	}
	if !mf.Manager.IsZero() {
		f.ManagerID = mf.Manager.Hex()
	}
	return f
}

func (r *FarmRepository) Create(ctx context.Context, f *domain.Farm) (*domain.Farm, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoFarm{
		Name:     f.Name,
		Location: f.Location,
		Size:     f.Size,
		Stuff:    f.Stuff,
	}
	if f.ManagerID != "" {
		oid, err := primitive.ObjectIDFromHex(f.ManagerID)
		if err != nil {
			return nil, fmt.Errorf("invalid manager id: %w", domain.ErrUserNotFound)
		}
		doc.Manager = oid
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert farm: %w", err)
	}

	created := *f
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *FarmRepository) FindByID(ctx context.Context, id string) (*domain.Farm, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFarmNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mf mongoFarm
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&mf); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFarmNotFound
		}
		return nil, fmt.Errorf("find farm: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *FarmRepository) FindByIDs(ctx context.Context, ids []string) ([]*domain.Farm, error) {
	oids := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		oid, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			continue
		}
		oids = append(oids, oid)
	}
	if len(oids) == 0 {
		return nil, nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": oids}})
	if err != nil {
		return nil, fmt.Errorf("find farms: %w", err)
	}
	defer cur.Close(ctx)

	return decodeFarms(ctx, cur)
}

// List returns one page of farms sorted by _id so the order is stable
// across identical queries.
func (r *FarmRepository) List(ctx context.Context, page, limit int) ([]*domain.Farm, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	skip := int64((page - 1) * limit)
	opts := options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(skip).
		SetLimit(int64(limit))

	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list farms: %w", err)
	}
	defer cur.Close(ctx)

	return decodeFarms(ctx, cur)
}

func decodeFarms(ctx context.Context, cur *mongo.Cursor) ([]*domain.Farm, error) {
	var farms []*domain.Farm
	for cur.Next(ctx) {
		var mf mongoFarm
		if err := cur.Decode(&mf); err != nil {
			return nil, fmt.Errorf("decode farm: %w", err)
		}
		farms = append(farms, mf.toDomain())
	}
	return farms, cur.Err()
}

// Update applies the changed fields in a single find-and-modify and returns
// the updated document.
func (r *FarmRepository) Update(ctx context.Context, id string, upd ports.FarmUpdate) (*domain.Farm, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrFarmNotFound
	}

	set := bson.M{}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Location != nil {
		set["location"] = *upd.Location
	}
	if upd.Size != nil {
		set["size"] = *upd.Size
	}
	if upd.Stuff != nil {
		set["stuff"] = *upd.Stuff
	}
	if upd.ManagerID != nil {
		mid, err := primitive.ObjectIDFromHex(*upd.ManagerID)
		if err != nil {
			return nil, fmt.Errorf("invalid manager id: %w", domain.ErrUserNotFound)
		}
		set["manager"] = mid
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var mf mongoFarm
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&mf)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrFarmNotFound
		}
		return nil, fmt.Errorf("update farm: %w", err)
	}
	return mf.toDomain(), nil
}

func (r *FarmRepository) UpdateStuff(ctx context.Context, id string, stuff []string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFarmNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"stuff": stuff}})
	if err != nil {
		return fmt.Errorf("update farm stuff: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrFarmNotFound
	}
	return nil
}

func (r *FarmRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrFarmNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete farm: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrFarmNotFound
	}
	return nil
}

// EnsureIndexes creates the farm name index used by dashboard listings.
func (r *FarmRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "name", Value: 1}},
	})
	return err
}
