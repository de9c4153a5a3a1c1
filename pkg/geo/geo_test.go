package geo

import (
	"errors"
	"strings"
	"testing"
)

// Fixture holds Alabama, California and Washington in file order; California
// is a MultiPolygon.
const fixture = `{"type":"FeatureCollection","features":[
{"type":"Feature","properties":{"GEO_ID":"0400000US01","STATE":"01","NAME":"Alabama","LSAD":"","CENSUSAREA":50645.326},
 "geometry":{"type":"Polygon","coordinates":[[[-88,30],[-85,30],[-85,35],[-88,35],[-88,30]]]}},
{"type":"Feature","properties":{"GEO_ID":"0400000US06","STATE":"06","NAME":"California","LSAD":"","CENSUSAREA":155779.22},
 "geometry":{"type":"MultiPolygon","coordinates":[[[[-124,32],[-114,32],[-114,42],[-124,42],[-124,32]]],[[[-119,33],[-118,33],[-118,34],[-119,33]]]]}},
{"type":"Feature","properties":{"GEO_ID":"0400000US53","STATE":"53","NAME":"Washington","LSAD":"","CENSUSAREA":66455.521},
 "geometry":{"type":"Polygon","coordinates":[[[-124,45],[-117,45],[-117,49],[-124,49],[-124,45]]]}}
]}`

func loadFixture(t *testing.T) States {
	t.Helper()
	ss, err := Decode(strings.NewReader(fixture))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	return ss
}

func TestDecode_ReadsPropertiesAndGeometry(t *testing.T) {
	ss := loadFixture(t)
	if len(ss) != 3 {
		t.Fatalf("expected 3 states, got %d", len(ss))
	}
	ca := ss.ByName("California")
	if ca == nil || ca.FIPS != 6 || ca.GeoID != "0400000US06" {
		t.Fatalf("unexpected California: %+v", ca)
	}
	if len(ca.Geometry) != 2 {
		t.Fatalf("expected 2 polygons for California, got %d", len(ca.Geometry))
	}
	if al := ss.ByFIPS(1); al == nil || al.Name != "Alabama" || len(al.Geometry) != 1 {
		t.Fatalf("unexpected Alabama: %+v", al)
	}
}

func TestDecode_EmptyCollection(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"type":"FeatureCollection","features":[]}`))
	if !errors.Is(err, ErrNoStates) {
		t.Fatalf("expected ErrNoStates, got %v", err)
	}
}

func TestJoinNames_InnerFollowsFileOrder(t *testing.T) {
	ss := loadFixture(t)
	keys := []string{"Washington", "Guam", "Alabama"}
	ms := ss.JoinNames(keys, Inner)
	if len(ms) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(ms))
	}
	if ms[0].State.Name != "Alabama" || ms[0].Row != 2 {
		t.Fatalf("expected Alabama first, got %+v", ms[0])
	}
	if ms[1].State.GeoID != "0400000US53" || ms[1].Row != 0 {
		t.Fatalf("expected Washington second, got %+v", ms[1])
	}
}

func TestJoinNames_RightKeepsUnmatched(t *testing.T) {
	ss := loadFixture(t)
	ms := ss.JoinNames([]string{"California", "Guam"}, Right)
	if len(ms) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(ms))
	}
	if ms[0].State == nil || ms[0].State.Name != "California" {
		t.Fatalf("expected California match, got %+v", ms[0])
	}
	if ms[1].State != nil {
		t.Fatalf("expected nil state for Guam, got %+v", ms[1].State)
	}
}

func TestJoinFIPS(t *testing.T) {
	ss := loadFixture(t)
	ms := ss.JoinFIPS([]int{6, 1, 99}, Inner)
	if len(ms) != 2 || ms[0].State.FIPS != 1 || ms[1].State.FIPS != 6 {
		t.Fatalf("unexpected matches: %+v", ms)
	}
}
