package services

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"course-server/models"
)

// CatalogService serves the district place catalog from MongoDB and the live
// area congestion levels from Redis. Area congestion is seeded from Mongo
// into Redis at startup so the per-leg lookup is a single key read.
type CatalogService struct {
	places      *mongo.Collection
	areas       *mongo.Collection
	parkingLots *mongo.Collection
	RedisClient *redis.Client
}

func NewCatalogService(db *mongo.Database, redisClient *redis.Client) *CatalogService {
	return &CatalogService{
		places:      db.Collection("places"),
		areas:       db.Collection("areas"),
		parkingLots: db.Collection("parking_lots"),
		RedisClient: redisClient,
	}
}

// GetPlace resolves one place by district and identifier. A missing place is
// (nil, nil), not an error.
func (s *CatalogService) GetPlace(ctx context.Context, district, id string) (*models.Place, error) {
	var place models.Place
	err := s.places.FindOne(ctx, bson.M{"district": district, "place_id": id}).Decode(&place)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &place, nil
}

// ListCandidates returns every place of a district with its congestion
// samples attached.
func (s *CatalogService) ListCandidates(ctx context.Context, district string) ([]models.Place, error) {
	return s.findPlaces(ctx, bson.M{"district": district})
}

// ListPlacesByCategory filters the district's places by category; an empty
// category returns all of them.
func (s *CatalogService) ListPlacesByCategory(ctx context.Context, district, category string) ([]models.Place, error) {
	filter := bson.M{"district": district}
	if category != "" {
		filter["category_group_name"] = category
	}
	return s.findPlaces(ctx, filter)
}

func (s *CatalogService) findPlaces(ctx context.Context, filter bson.M) ([]models.Place, error) {
	cursor, err := s.places.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var places []models.Place
	if err := cursor.All(ctx, &places); err != nil {
		return nil, err
	}
	return places, nil
}

// ListAreaCongestion returns the live congestion rows of a district.
func (s *CatalogService) ListAreaCongestion(ctx context.Context, district string) ([]models.AreaCongestion, error) {
	cursor, err := s.areas.Find(ctx, bson.M{"district": district})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var areas []models.AreaCongestion
	if err := cursor.All(ctx, &areas); err != nil {
		return nil, err
	}
	return areas, nil
}

// ListParkingLots returns the district's parking lots.
func (s *CatalogService) ListParkingLots(ctx context.Context, district string) ([]models.ParkingLot, error) {
	cursor, err := s.parkingLots.Find(ctx, bson.M{"district": district})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var lots []models.ParkingLot
	if err := cursor.All(ctx, &lots); err != nil {
		return nil, err
	}
	return lots, nil
}

// GetCongestion reads the live crowd level for an area from Redis. A missing
// key is (nil, nil), not an error.
func (s *CatalogService) GetCongestion(ctx context.Context, district, areaCode string) (*string, error) {
	level, err := s.RedisClient.Get(ctx, congestionKey(district, areaCode)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &level, nil
}

// SeedCongestion copies every area congestion row from Mongo into Redis.
func (s *CatalogService) SeedCongestion(ctx context.Context) error {
	cursor, err := s.areas.Find(ctx, bson.M{})
	if err != nil {
		return err
	}
	defer cursor.Close(ctx)
	var areas []models.AreaCongestion
	if err := cursor.All(ctx, &areas); err != nil {
		return err
	}
	for _, area := range areas {
		err := s.RedisClient.Set(ctx, congestionKey(area.District, area.AreaCode), string(area.Level), 0).Err()
		if err != nil {
			log.Printf("Failed to seed congestion for %s/%s: %v", area.District, area.AreaCode, err)
			continue
		}
	}
	log.Printf("Seeded %d area congestion levels into Redis", len(areas))
	return nil
}

func congestionKey(district, areaCode string) string {
	return fmt.Sprintf("congestion:%s:%s", district, areaCode)
}
