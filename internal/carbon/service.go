package carbon

import (
	"errors"
	"math"
	"strings"
)

// Per-passenger-km emission factors in kg CO2e. Shared road modes are divided
// across the travel party; scheduled transit factors already assume average
// occupancy.
var factorsPerKM = map[string]float64{
	"car":        0.192,
	"motorcycle": 0.103,
	"tricycle":   0.115,
	"jeepney":    0.060,
	"bus":        0.105,
	"van":        0.158,
	"ferry":      0.019,
	"plane":      0.255,
	"bicycle":    0,
	"walking":    0,
}

var sharedModes = map[string]bool{
	"car":        true,
	"motorcycle": true,
	"tricycle":   true,
	"van":        true,
}

var (
	ErrUnknownMode = errors.New("unknown transport mode")
	ErrBadDistance = errors.New("distance must be positive")
)

type Service interface {
	Estimate(in EstimateReq) (EstimateResp, error)
	Save(uid string, in EstimateReq) (*Record, error)
	ListByUser(uid string) ([]Record, error)
}

type service struct{ repo Repository }

func NewService(r Repository) Service { return &service{repo: r} }

func (s *service) Estimate(in EstimateReq) (EstimateResp, error) {
	mode := strings.ToLower(strings.TrimSpace(in.Mode))
	factor, ok := factorsPerKM[mode]
	if !ok {
		return EstimateResp{}, ErrUnknownMode
	}
	if in.DistanceKM <= 0 {
		return EstimateResp{}, ErrBadDistance
	}
	passengers := in.Passengers
	if passengers < 1 {
		passengers = 1
	}

	kg := factor * in.DistanceKM
	if sharedModes[mode] {
		kg /= float64(passengers)
	}
	kg = math.Round(kg*1000) / 1000

	return EstimateResp{
		Mode:       mode,
		DistanceKM: in.DistanceKM,
		Passengers: passengers,
		EmissionKG: kg,
	}, nil
}

func (s *service) Save(uid string, in EstimateReq) (*Record, error) {
	est, err := s.Estimate(in)
	if err != nil {
		return nil, err
	}
	rec := &Record{
		UserID:     uid,
		Mode:       est.Mode,
		DistanceKM: est.DistanceKM,
		Passengers: est.Passengers,
		EmissionKG: est.EmissionKG,
	}
	if err := s.repo.Create(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *service) ListByUser(uid string) ([]Record, error) {
	return s.repo.ListByUser(uid)
}
