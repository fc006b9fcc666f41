package model

import (
	geom "github.com/peterstace/simplefeatures/geom"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DatabaseModels is a list of all the structs exported here which represent tables in the database schema
var DatabaseModels = []interface{}{
	&Scene{},
	&Element{},
	&Timeline{},
	&Pose{},
}

// Geometry columns hold EPSG:3857 WKB projected through the configured pitch.

// Scene is a published scene definition. Definition keeps the whole scene as
// JSON so it can be served back without joining elements.
type Scene struct {
	gorm.Model
	Name          string         `json:"name" gorm:"size:127;uniqueIndex:idx_scene_name"`
	LoopDuration  float64        `json:"loopDuration"`
	ShowHalfField bool           `json:"showHalfField" gorm:"default:false"`
	MovingCount   int            `json:"movingCount"`
	Definition    datatypes.JSON `json:"definition"`
	Elements      []Element      `json:"elements" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

func (*Scene) TableName() string {
	return "scenes"
}

// Element is one scene element. X and Y are the normalized base position and
// Rotation is in radians. Path columns stay empty for static elements.
type Element struct {
	ID       uint       `json:"id" gorm:"primarykey;autoIncrement;"`
	SceneID  uint       `json:"sceneId" gorm:"index:idx_element_scene_id"`
	Index    int        `json:"index"`
	Type     string     `json:"type" gorm:"size:16"`
	Role     string     `json:"role" gorm:"size:16"`
	GoalSize string     `json:"goalSize" gorm:"size:8"`
	Color    string     `json:"color" gorm:"size:8"`
	X        float64    `json:"x"`
	Y        float64    `json:"y"`
	Position geom.Point `json:"position"`
	Rotation float64    `json:"rotation"`
	Scale    float64    `json:"scale" gorm:"default:1"`

	Duration      float64         `json:"duration"`
	Repeat        string          `json:"repeat" gorm:"size:16"`
	Interpolation string          `json:"interpolation" gorm:"size:16"`
	Waypoints     datatypes.JSON  `json:"waypoints"`
	Path          geom.LineString `json:"path"`
	PathMeters    float64         `json:"pathMeters"`
}

func (*Element) TableName() string {
	return "elements"
}

// Timeline is a sampled run of a scene. Its poses live in the poses table.
type Timeline struct {
	gorm.Model
	SceneName     string  `json:"sceneName" gorm:"size:127;index:idx_timeline_scene_name"`
	Speed         string  `json:"speed" gorm:"size:16"`
	FPS           int     `json:"fps"`
	Duration      float64 `json:"duration"`
	FrameCount    int     `json:"frameCount"`
	ShowHalfField bool    `json:"showHalfField" gorm:"default:false"`
}

func (*Timeline) TableName() string {
	return "timelines"
}

// Pose is one element in one frame of a timeline.
type Pose struct {
	ID         uint     `json:"id" gorm:"primarykey;autoIncrement;"`
	TimelineID uint     `json:"timelineId" gorm:"index:idx_pose_timeline_id"`
	Timeline   Timeline `json:"-" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;foreignkey:TimelineID;"`
	Frame      int      `json:"frame" gorm:"index:idx_pose_frame"`
	Time       float64  `json:"time"`

	ElementIndex int        `json:"elementIndex"`
	Type         string     `json:"type" gorm:"size:16"`
	Role         string     `json:"role" gorm:"size:16"`
	X            float64    `json:"x"`
	Y            float64    `json:"y"`
	Position     geom.Point `json:"position"`
	Direction    float64    `json:"direction"` // radians
	DrawOrder    int        `json:"drawOrder"`
}

func (*Pose) TableName() string {
	return "poses"
}
