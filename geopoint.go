package msql

import (
	"bytes"
	"database/sql/driver"
	"encoding/binary"
	"fmt"
)

// GeoPoint is a field type for columns of the spatial type POINT that
// stores a geographic coordinate with a longitude and latitude.
// It implements driver.Valuer and sql.Scanner, so it can be bound as a
// statement parameter and used as a scan target by the result mapper
type GeoPoint struct {
	Longitude float64
	Latitude  float64
}

// Scan parses the "WKB" representation MySQL returns for a POINT
// column into the coordinate pair
func (g *GeoPoint) Scan(src any) error {
	b, ok := src.([]byte)
	if !ok {
		return fmt.Errorf("expected []byte for GeoPoint, got %T", src)
	}
	if len(b) != 25 {
		return fmt.Errorf("expected []byte with length 25, got %d", len(b))
	}

	var longitude, latitude float64
	if err := binary.Read(bytes.NewReader(b[9:17]), binary.LittleEndian, &longitude); err != nil {
		return err
	}
	if err := binary.Read(bytes.NewReader(b[17:25]), binary.LittleEndian, &latitude); err != nil {
		return err
	}

	*g = GeoPoint{Longitude: longitude, Latitude: latitude}
	return nil
}

// Value transforms the coordinate pair into the "WKB" format the
// database understands.
// See https://dev.mysql.com/doc/refman/8.0/en/gis-data-formats.html
func (g GeoPoint) Value() (driver.Value, error) {
	buf := new(bytes.Buffer)
	// Padding
	binary.Write(buf, binary.LittleEndian, []byte{0, 0, 0, 0})
	// Point marker
	binary.Write(buf, binary.LittleEndian, []byte{1, 1, 0, 0, 0})
	// Data
	binary.Write(buf, binary.LittleEndian, g.Longitude)
	binary.Write(buf, binary.LittleEndian, g.Latitude)

	return buf.Bytes(), nil
}
