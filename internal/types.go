package internal

import (
	"path/filepath"
	"strings"
	"time"
)

type SourceKind string

const (
	SourceCSV    SourceKind = "csv"
	SourceXLSX   SourceKind = "xlsx"
	SourceHTML   SourceKind = "html"
	SourceSheets SourceKind = "sheets"
)

func KindFromExt(name string) SourceKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm":
		return SourceXLSX
	case ".html", ".htm":
		return SourceHTML
	default:
		return ""
	}
}

type Payload struct {
	Kind     SourceKind
	Location string
	Body     []byte
	Grid     [][]string
}

type Row struct {
	Headers []string
	Values  map[string]string
}

func (r Row) Get(header string) string {
	if header == "" || r.Values == nil {
		return ""
	}
	return r.Values[header]
}

type PriceTier string

const (
	PriceCheap         PriceTier = "cheap"
	PriceOk            PriceTier = "ok"
	PriceExpensive     PriceTier = "expensive"
	PriceVeryExpensive PriceTier = "very_expensive"
	PriceUndefined     PriceTier = "undefined"
)

type RatingTier string

// RatingNone is the zero value: the row carried no rating text at all.
const (
	RatingNone      RatingTier = ""
	RatingGood      RatingTier = "good"
	RatingGreat     RatingTier = "great"
	RatingPerfect   RatingTier = "perfect"
	RatingPending   RatingTier = "pending"
	RatingUndefined RatingTier = "undefined"
)

const CategoryGeneric = "generic"

type PriceInfo struct {
	Raw   string    `json:"raw"`
	Tier  PriceTier `json:"tier"`
	Label string    `json:"label"`
}

type RatingInfo struct {
	Raw   string     `json:"raw"`
	Tier  RatingTier `json:"tier,omitempty"`
	Label string     `json:"label,omitempty"`
}

func (r RatingInfo) Rated() bool {
	return r.Tier != RatingNone
}

type Record struct {
	Name          string     `json:"name"`
	Category      string     `json:"category"`
	CategoryClass string     `json:"categoryClass"`
	Regions       []string   `json:"regions"`
	Description   string     `json:"description"`
	Price         PriceInfo  `json:"price"`
	Rating        RatingInfo `json:"rating"`
	MapURL        string     `json:"mapUrl"`
	Instagram     string     `json:"instagram,omitempty"`
	Site          string     `json:"site,omitempty"`
	Coords        string     `json:"coords,omitempty"`
	SearchText    string     `json:"-"`
}

func (r Record) HasRegion(tag string) bool {
	for _, region := range r.Regions {
		if region == tag {
			return true
		}
	}
	return false
}

const (
	ColName     = "name"
	ColCategory = "category"
	ColRegion   = "region"
	ColDesc     = "desc"
	ColPrice    = "price"
	ColRating   = "rating"
	ColMaps     = "maps"
	ColCoords   = "coords"
	ColInsta    = "insta"
	ColSite     = "site"
)

var ColumnKeys = []string{ColName, ColCategory, ColRegion, ColDesc, ColPrice, ColRating, ColMaps, ColCoords, ColInsta, ColSite}

type ColumnMap map[string]string

type LoadStatus string

const (
	LoadOK     LoadStatus = "loaded"
	LoadEmpty  LoadStatus = "empty"
	LoadFailed LoadStatus = "failed"
)

type LoadRun struct {
	ID        int
	TraceID   string
	Source    string
	Status    LoadStatus
	Message   string
	RowCount  int
	Columns   ColumnMap
	Timings   map[string]float64
	CreatedAt string
}

type LoadInfo struct {
	TraceID  string     `json:"traceId"`
	Source   string     `json:"source"`
	Status   LoadStatus `json:"status"`
	Message  string     `json:"message"`
	Detected string     `json:"detected,omitempty"`
	Columns  ColumnMap  `json:"columns"`
	LoadedAt time.Time  `json:"loadedAt"`
}
