package models

// CrowdLevel is an ordered categorical congestion label, least to most crowded.
type CrowdLevel string

const (
	CrowdRelaxed CrowdLevel = "relaxed"
	CrowdNormal  CrowdLevel = "normal"
	CrowdBusy    CrowdLevel = "busy"
	CrowdCrowded CrowdLevel = "crowded"
)

// Place categories in the catalog vocabulary.
const (
	CategoryRestaurant = "restaurant"
	CategoryCafe       = "cafe"
	CategoryAttraction = "attraction"
)

// Coordinate is a mapx/mapy pair. X is longitude, Y is latitude.
type Coordinate struct {
	X float64 `json:"mapX" bson:"mapx"`
	Y float64 `json:"mapY" bson:"mapy"`
}

// CongestionSample is one time-of-day congestion observation for a place.
type CongestionSample struct {
	TimeSlot      string     `json:"time_slot" bson:"time_slot"`
	Level         CrowdLevel `json:"level" bson:"level"`
	MinPopulation int        `json:"min_pop" bson:"min_pop"`
}

type Place struct {
	ID       string             `json:"id" bson:"place_id"`
	District string             `json:"gu" bson:"district"`
	Name     string             `json:"name" bson:"name"`
	AreaCode string             `json:"areaCd" bson:"area_cd"`
	Category string             `json:"category" bson:"category_group_name"`
	Location Coordinate         `json:"location" bson:"location"`
	Rating   float64            `json:"rating" bson:"rating"`
	Address  string             `json:"address" bson:"address_name"`
	ImageURL string             `json:"imageUrl" bson:"imageurl"`
	PlaceURL string             `json:"placeUrl" bson:"placeurl"`
	Menus    []string           `json:"menus" bson:"menu"`
	Keywords []string           `json:"keywords" bson:"keyword"`
	Samples  []CongestionSample `json:"samples" bson:"samples"`
}

// AreaCongestion is the live crowd level for one sub-district area.
type AreaCongestion struct {
	District string     `json:"gu" bson:"district"`
	AreaCode string     `json:"areaCd" bson:"area_cd"`
	Name     string     `json:"name" bson:"name"`
	Level    CrowdLevel `json:"congestion" bson:"congestion"`
	Location Coordinate `json:"location" bson:"location"`
}

type ParkingLot struct {
	District   string     `json:"gu" bson:"district"`
	ID         string     `json:"id" bson:"lot_id"`
	Name       string     `json:"name" bson:"name"`
	Address    string     `json:"address" bson:"address_name"`
	Capacity   string     `json:"capacity" bson:"capacity"`
	CurParking string     `json:"curParking" bson:"cur_parking"`
	Location   Coordinate `json:"location" bson:"location"`
}
