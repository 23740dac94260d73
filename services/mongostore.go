package services

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/showrov4g/hostel-management-server/helper"
	"github.com/showrov4g/hostel-management-server/models"
)

// MongoMealStore implements MealStore on a MongoDB collection. The toggle and
// rating operations use aggregation-pipeline updates so the membership test,
// the mutation and the derived-field recompute are evaluated server-side in
// one document write.
type MongoMealStore struct {
	coll *mongo.Collection
}

func NewMongoMealStore(coll *mongo.Collection) *MongoMealStore {
	return &MongoMealStore{coll: coll}
}

func (s *MongoMealStore) GetMeal(ctx context.Context, mealID string) (*models.Meal, error) {
	oid, err := primitive.ObjectIDFromHex(mealID)
	if err != nil {
		return nil, fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}

	var meal models.Meal
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&meal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	return &meal, nil
}

func (s *MongoMealStore) ToggleLike(ctx context.Context, mealID, userID string) (*models.Meal, error) {
	oid, err := primitive.ObjectIDFromHex(mealID)
	if err != nil {
		return nil, fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}

	likedBy := bson.M{"$ifNull": bson.A{"$likedBy", bson.A{}}}

	// Flip membership and re-derive the counter in a single pipeline update:
	// likes == len(likedBy) holds by construction, with no read-write gap.
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"likedBy": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{userID, likedBy}},
				bson.M{"$setDifference": bson.A{likedBy, bson.A{userID}}},
				bson.M{"$concatArrays": bson.A{likedBy, bson.A{userID}}},
			}},
		}}},
		bson.D{{Key: "$set", Value: bson.M{"likes": bson.M{"$size": "$likedBy"}}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var meal models.Meal
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&meal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	return &meal, nil
}

func (s *MongoMealStore) UpsertRating(ctx context.Context, mealID, userID string, rating int) (*models.Meal, error) {
	oid, err := primitive.ObjectIDFromHex(mealID)
	if err != nil {
		return nil, fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}

	entry := bson.M{"userId": userID, "rating": rating}
	ratings := bson.M{"$ifNull": bson.A{"$ratings", bson.A{}}}
	raters := bson.M{"$map": bson.M{"input": ratings, "as": "r", "in": "$$r.userId"}}

	// Replace the caller's entry in place, or append it, then recompute the
	// average from the array actually persisted. One document write covers
	// both, so the stored average can never lag the ratings array.
	update := mongo.Pipeline{
		bson.D{{Key: "$set", Value: bson.M{
			"ratings": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{userID, raters}},
				bson.M{"$map": bson.M{
					"input": ratings,
					"as":    "r",
					"in": bson.M{"$cond": bson.A{
						bson.M{"$eq": bson.A{"$$r.userId", userID}},
						entry,
						"$$r",
					}},
				}},
				bson.M{"$concatArrays": bson.A{ratings, bson.A{entry}}},
			}},
		}}},
		bson.D{{Key: "$set", Value: bson.M{
			"averageRating": bson.M{"$round": bson.A{bson.M{"$avg": "$ratings.rating"}, 2}},
		}}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var meal models.Meal
	err = s.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, update, opts).Decode(&meal)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	return &meal, nil
}

func (s *MongoMealStore) IncrementReviewsCount(ctx context.Context, mealID string, delta int) error {
	oid, err := primitive.ObjectIDFromHex(mealID)
	if err != nil {
		return fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{"reviews_count": delta}})
	if err != nil {
		return fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}
	return nil
}

func (s *MongoMealStore) SetReviewsCount(ctx context.Context, mealID string, count int) error {
	oid, err := primitive.ObjectIDFromHex(mealID)
	if err != nil {
		return fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}

	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"reviews_count": count}})
	if err != nil {
		return fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("meal %s: %w", mealID, helper.ErrNotFound)
	}
	return nil
}

func (s *MongoMealStore) ListMealIDs(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"_id": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	defer cursor.Close(ctx)

	var docs []struct {
		ID primitive.ObjectID `bson:"_id"`
	}
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}

	ids := make([]string, 0, len(docs))
	for _, doc := range docs {
		ids = append(ids, doc.ID.Hex())
	}
	return ids, nil
}

func (s *MongoMealStore) CountMeals(ctx context.Context) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	return count, nil
}

// MongoReviewStore implements ReviewStore on a MongoDB collection.
type MongoReviewStore struct {
	coll *mongo.Collection
}

func NewMongoReviewStore(coll *mongo.Collection) *MongoReviewStore {
	return &MongoReviewStore{coll: coll}
}

func (s *MongoReviewStore) InsertReview(ctx context.Context, review *models.Review) (string, error) {
	review.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, review); err != nil {
		return "", fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	return review.ID.Hex(), nil
}

func (s *MongoReviewStore) CountForMeal(ctx context.Context, mealID string) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{"productId": mealID})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	return count, nil
}

func (s *MongoReviewStore) CountReviews(ctx context.Context) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	return count, nil
}

// MongoRequestStore implements RequestStore on a MongoDB collection.
type MongoRequestStore struct {
	coll *mongo.Collection
}

func NewMongoRequestStore(coll *mongo.Collection) *MongoRequestStore {
	return &MongoRequestStore{coll: coll}
}

func (s *MongoRequestStore) InsertRequest(ctx context.Context, req *models.Request) (string, error) {
	req.ID = primitive.NewObjectID()
	if _, err := s.coll.InsertOne(ctx, req); err != nil {
		return "", fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	return req.ID.Hex(), nil
}

func (s *MongoRequestStore) MarkDelivered(ctx context.Context, requestID string) error {
	oid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return fmt.Errorf("request %s: %w", requestID, helper.ErrNotFound)
	}

	// Matched count, not modified count: setting delivered on an already
	// delivered request matches without modifying and must not error.
	result, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": models.StatusDelivered}})
	if err != nil {
		return fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("request %s: %w", requestID, helper.ErrNotFound)
	}
	return nil
}

func (s *MongoRequestStore) DeleteRequest(ctx context.Context, requestID string) error {
	oid, err := primitive.ObjectIDFromHex(requestID)
	if err != nil {
		return fmt.Errorf("request %s: %w", requestID, helper.ErrNotFound)
	}

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	if result.DeletedCount == 0 {
		return fmt.Errorf("request %s: %w", requestID, helper.ErrNotFound)
	}
	return nil
}

func (s *MongoRequestStore) CountRequests(ctx context.Context) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	return count, nil
}

// MongoUserStore implements UserStore on a MongoDB collection.
type MongoUserStore struct {
	coll *mongo.Collection
}

func NewMongoUserStore(coll *mongo.Collection) *MongoUserStore {
	return &MongoUserStore{coll: coll}
}

func (s *MongoUserStore) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := s.coll.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", email, helper.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	return &user, nil
}

func (s *MongoUserStore) CountUsers(ctx context.Context) (int64, error) {
	count, err := s.coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("%w: %v", helper.ErrStorage, err)
	}
	return count, nil
}
