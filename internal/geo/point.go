package geo

import (
	"database/sql/driver"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// SRID is the spatial reference system for every stored geometry (WGS 84).
const SRID = 4326

// Point is a WGS 84 point. Coordinate order is (longitude, latitude), the
// GeoJSON and WKT convention.
type Point struct {
	Lng float64
	Lat float64
}

// DerivePoint builds the stored geometry from latitude and longitude.
// Returns false when either value is NaN or infinite.
func DerivePoint(lat, lng float64) (Point, bool) {
	if math.IsNaN(lat) || math.IsInf(lat, 0) || math.IsNaN(lng) || math.IsInf(lng, 0) {
		return Point{}, false
	}
	return Point{Lng: lng, Lat: lat}, true
}

// ValidLat reports whether lat is a finite latitude in [-90, 90].
func ValidLat(lat float64) bool {
	return !math.IsNaN(lat) && !math.IsInf(lat, 0) && lat >= -90 && lat <= 90
}

// ValidLng reports whether lng is a finite longitude in [-180, 180].
func ValidLng(lng float64) bool {
	return !math.IsNaN(lng) && !math.IsInf(lng, 0) && lng >= -180 && lng <= 180
}

// Value serializes the point as EWKT, which postgres casts to geometry and
// sqlite (used in tests) stores verbatim.
func (p Point) Value() (driver.Value, error) {
	return fmt.Sprintf("SRID=%d;POINT(%s %s)",
		SRID,
		strconv.FormatFloat(p.Lng, 'f', -1, 64),
		strconv.FormatFloat(p.Lat, 'f', -1, 64),
	), nil
}

// Scan accepts EWKT text or the hex EWKB that postgres returns for geometry
// columns.
func (p *Point) Scan(src any) error {
	var s string
	switch v := src.(type) {
	case nil:
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("geo: cannot scan %T into Point", src)
	}

	if strings.HasPrefix(s, "SRID=") || strings.HasPrefix(s, "POINT") {
		return p.parseEWKT(s)
	}
	return p.parseEWKBHex(s)
}

func (p *Point) parseEWKT(s string) error {
	if i := strings.IndexByte(s, ';'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "POINT(") || !strings.HasSuffix(s, ")") {
		return fmt.Errorf("geo: malformed WKT point %q", s)
	}
	coords := strings.Fields(s[len("POINT(") : len(s)-1])
	if len(coords) != 2 {
		return fmt.Errorf("geo: malformed WKT point %q", s)
	}
	lng, err := strconv.ParseFloat(coords[0], 64)
	if err != nil {
		return fmt.Errorf("geo: bad longitude in %q: %w", s, err)
	}
	lat, err := strconv.ParseFloat(coords[1], 64)
	if err != nil {
		return fmt.Errorf("geo: bad latitude in %q: %w", s, err)
	}
	p.Lng, p.Lat = lng, lat
	return nil
}

const (
	ewkbPointType = 1
	ewkbSRIDFlag  = 0x20000000
)

func (p *Point) parseEWKBHex(s string) error {
	raw, err := hex.DecodeString(s)
	if err != nil {
		return fmt.Errorf("geo: geometry is neither WKT nor hex EWKB: %w", err)
	}
	if len(raw) < 21 {
		return fmt.Errorf("geo: EWKB too short (%d bytes)", len(raw))
	}

	var order binary.ByteOrder = binary.BigEndian
	if raw[0] == 1 {
		order = binary.LittleEndian
	}

	gtype := order.Uint32(raw[1:5])
	offset := 5
	if gtype&ewkbSRIDFlag != 0 {
		offset += 4
	}
	if gtype&0xff != ewkbPointType {
		return fmt.Errorf("geo: unexpected geometry type %d", gtype&0xff)
	}
	if len(raw) < offset+16 {
		return fmt.Errorf("geo: EWKB too short for point payload")
	}

	p.Lng = math.Float64frombits(order.Uint64(raw[offset : offset+8]))
	p.Lat = math.Float64frombits(order.Uint64(raw[offset+8 : offset+16]))
	return nil
}

// MarshalJSON renders the point as GeoJSON: coordinates are [lng, lat].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string     `json:"type"`
		Coordinates [2]float64 `json:"coordinates"`
	}{
		Type:        "Point",
		Coordinates: [2]float64{p.Lng, p.Lat},
	})
}

func (p *Point) UnmarshalJSON(data []byte) error {
	var doc struct {
		Type        string    `json:"type"`
		Coordinates []float64 `json:"coordinates"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	if len(doc.Coordinates) != 2 {
		return fmt.Errorf("geo: GeoJSON point needs 2 coordinates, got %d", len(doc.Coordinates))
	}
	p.Lng, p.Lat = doc.Coordinates[0], doc.Coordinates[1]
	return nil
}

func (Point) GormDataType() string {
	return "geometry"
}

// GormDBDataType picks the column type per dialect: a PostGIS point on
// postgres, plain text elsewhere (the EWKT Value round-trips through text).
func (Point) GormDBDataType(db *gorm.DB, _ *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return fmt.Sprintf("geometry(Point,%d)", SRID)
	}
	return "text"
}
