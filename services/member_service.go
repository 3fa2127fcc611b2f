package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"course-server/models"
	"course-server/utils/errors"
)

// MemberStore is the member and saved-course persistence contract.
type MemberStore interface {
	MemberInfo(ctx context.Context, memberID string) (*models.Member, error)
	SetStartCoordinate(ctx context.Context, memberID string, point models.Coordinate) error
	InsertSavedCourse(ctx context.Context, course models.SavedCourse) error
	SavedCourses(ctx context.Context, memberID string) ([]models.SavedCourse, error)
	ActiveCourses(ctx context.Context, memberID string) ([]models.SavedCourse, error)
	DeactivateAll(ctx context.Context, memberID string, courseIDs []string) (int64, error)
}

// MemberService owns member info and the saved-course activity state: a new
// save becomes the member's single active course, and stop deactivates every
// active course it finds.
type MemberService struct {
	store    MemberStore
	geocoder Geocoder
}

func NewMemberService(store MemberStore, geocoder Geocoder) *MemberService {
	return &MemberService{store: store, geocoder: geocoder}
}

// GetMemberInfo returns the member's profile or a not-found error.
func (s *MemberService) GetMemberInfo(ctx context.Context, memberID string) (*models.Member, error) {
	member, err := s.store.MemberInfo(ctx, memberID)
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Could not retrieve member", http.StatusInternalServerError)
	}
	if member == nil {
		return nil, errors.NewAPIError("NOT_FOUND", "Member not found", http.StatusNotFound)
	}
	return member, nil
}

// SetStartLocation geocodes the address and stores it as the member's course
// start point.
func (s *MemberService) SetStartLocation(ctx context.Context, memberID, address string) (models.Coordinate, error) {
	if _, err := s.GetMemberInfo(ctx, memberID); err != nil {
		return models.Coordinate{}, err
	}
	point, err := s.geocoder.GeocodeAddress(ctx, address)
	if err != nil {
		return models.Coordinate{}, err
	}
	if err := s.store.SetStartCoordinate(ctx, memberID, point); err != nil {
		return models.Coordinate{}, errors.Wrap(err, "DB_ERROR", "Could not update member location", http.StatusInternalServerError)
	}
	return point, nil
}

// SaveCourse stores a five-slot course as the member's active one. Any
// previously active course is deactivated first, so at most one course per
// member is active.
func (s *MemberService) SaveCourse(ctx context.Context, memberID, district string, slots []string) (string, error) {
	if memberID == "" || district == "" || len(slots) != models.SavedSlots {
		return "", errors.ErrInvalidInput
	}
	if _, err := s.StopActiveCourses(ctx, memberID); err != nil {
		return "", err
	}
	course := models.SavedCourse{
		MemberID:  memberID,
		CourseID:  uuid.New().String(),
		District:  district,
		Slots:     slots,
		Active:    true,
		CreatedAt: time.Now(),
	}
	if err := s.store.InsertSavedCourse(ctx, course); err != nil {
		return "", errors.Wrap(err, "DB_ERROR", "Could not save course", http.StatusInternalServerError)
	}
	return course.CourseID, nil
}

// StopActiveCourses deactivates every active course of the member and
// returns how many were flipped. No active courses is not an error.
func (s *MemberService) StopActiveCourses(ctx context.Context, memberID string) (int64, error) {
	if memberID == "" {
		return 0, errors.ErrInvalidInput
	}
	active, err := s.store.ActiveCourses(ctx, memberID)
	if err != nil {
		return 0, errors.Wrap(err, "DB_ERROR", "Could not retrieve member courses", http.StatusInternalServerError)
	}
	if len(active) == 0 {
		return 0, nil
	}
	ids := make([]string, 0, len(active))
	for _, course := range active {
		ids = append(ids, course.CourseID)
	}
	count, err := s.store.DeactivateAll(ctx, memberID, ids)
	if err != nil {
		// The store applies updates one by one; report how far it got.
		return count, errors.Wrap(err, "DB_ERROR", "Could not deactivate all courses", http.StatusInternalServerError)
	}
	return count, nil
}

// GetActiveCourses returns the member's currently active saved courses.
func (s *MemberService) GetActiveCourses(ctx context.Context, memberID string) ([]models.SavedCourse, error) {
	if memberID == "" {
		return nil, errors.ErrInvalidInput
	}
	courses, err := s.store.ActiveCourses(ctx, memberID)
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Could not retrieve member courses", http.StatusInternalServerError)
	}
	return courses, nil
}

// GetSavedCourses returns every saved course of the member.
func (s *MemberService) GetSavedCourses(ctx context.Context, memberID string) ([]models.SavedCourse, error) {
	if memberID == "" {
		return nil, errors.ErrInvalidInput
	}
	courses, err := s.store.SavedCourses(ctx, memberID)
	if err != nil {
		return nil, errors.Wrap(err, "DB_ERROR", "Could not retrieve member courses", http.StatusInternalServerError)
	}
	return courses, nil
}

// MongoMemberStore implements MemberStore on the members and saved_courses
// collections.
type MongoMemberStore struct {
	members *mongo.Collection
	courses *mongo.Collection
}

func NewMongoMemberStore(db *mongo.Database) *MongoMemberStore {
	return &MongoMemberStore{
		members: db.Collection("members"),
		courses: db.Collection("saved_courses"),
	}
}

func (s *MongoMemberStore) MemberInfo(ctx context.Context, memberID string) (*models.Member, error) {
	var member models.Member
	err := s.members.FindOne(ctx, bson.M{"member_id": memberID}).Decode(&member)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (s *MongoMemberStore) SetStartCoordinate(ctx context.Context, memberID string, point models.Coordinate) error {
	update := bson.M{"$set": bson.M{"start": bson.M{"mapx": point.X, "mapy": point.Y}}}
	_, err := s.members.UpdateOne(ctx, bson.M{"member_id": memberID}, update)
	return err
}

func (s *MongoMemberStore) InsertSavedCourse(ctx context.Context, course models.SavedCourse) error {
	_, err := s.courses.InsertOne(ctx, course)
	return err
}

func (s *MongoMemberStore) SavedCourses(ctx context.Context, memberID string) ([]models.SavedCourse, error) {
	return s.findCourses(ctx, bson.M{"member_id": memberID})
}

func (s *MongoMemberStore) ActiveCourses(ctx context.Context, memberID string) ([]models.SavedCourse, error) {
	return s.findCourses(ctx, bson.M{"member_id": memberID, "active": true})
}

func (s *MongoMemberStore) findCourses(ctx context.Context, filter bson.M) ([]models.SavedCourse, error) {
	cursor, err := s.courses.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)
	var courses []models.SavedCourse
	if err := cursor.All(ctx, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

func (s *MongoMemberStore) DeactivateAll(ctx context.Context, memberID string, courseIDs []string) (int64, error) {
	filter := bson.M{
		"member_id": memberID,
		"course_id": bson.M{"$in": courseIDs},
		"active":    true,
	}
	result, err := s.courses.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"active": false}})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
