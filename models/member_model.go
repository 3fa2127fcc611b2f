package models

import "time"

type Member struct {
	ID       string     `json:"memberId" bson:"member_id"`
	Nickname string     `json:"nickname" bson:"nickname"`
	Address  string     `json:"address" bson:"address"`
	Start    Coordinate `json:"start" bson:"start"`
}

// SavedCourse is a member's stored five-slot course for a district.
// At most one saved course per member is active at a time.
type SavedCourse struct {
	MemberID  string    `json:"memberId" bson:"member_id"`
	CourseID  string    `json:"courseId" bson:"course_id"`
	District  string    `json:"gu" bson:"district"`
	Slots     []string  `json:"slots" bson:"slots"`
	Active    bool      `json:"active" bson:"active"`
	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
}
