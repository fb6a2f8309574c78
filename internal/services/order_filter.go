package services

import (
	"strconv"
	"time"

	"orderdesk/internal/apperr"
	"orderdesk/internal/dates"
	"orderdesk/internal/models"
	"orderdesk/internal/repositories"
)

// OrderQuery is the raw bag of optional listing parameters, as received on
// the wire. Empty strings mean "not supplied".
type OrderQuery struct {
	ID        string
	Time      string // "today" sentinel
	Planned   string // dd/mm/yyyy, filters on the creation date
	ClientID  string
	ProductID string
	Status    string
}

// buildFilter validates the query and turns it into either a direct id
// lookup (first return value non-nil) or an AND-combined store filter.
// Every rejection happens before any order is fetched.
func (s *OrderService) buildFilter(q OrderQuery) (*uint, repositories.OrderFilter, error) {
	var filter repositories.OrderFilter

	// A single order by id and a filtered collection are mutually exclusive
	// requests.
	if q.ID != "" && (q.Time != "" || q.Planned != "") {
		return nil, filter, apperr.New(apperr.Conflict, "id",
			"send either an id query or a time/planned query, not both at the same time")
	}

	if q.ID != "" {
		id, err := parseUint(q.ID, "id")
		if err != nil {
			return nil, filter, err
		}
		return &id, filter, nil
	}

	if q.Time != "" {
		if q.Time != "today" {
			return nil, filter, apperr.New(apperr.InvalidArgument, "time",
				"the only supported value for time is %q", "today")
		}
		start, next := dates.DayWindow(time.Now())
		filter.DeliveringFrom = &start
		filter.DeliveringTo = &next
	}

	if q.Planned != "" {
		planned, err := dates.Parse(q.Planned)
		if err != nil {
			return nil, filter, err
		}
		start, next := dates.DayWindow(planned)
		filter.OrderedFrom = &start
		filter.OrderedTo = &next
	}

	if q.ClientID != "" {
		clientID, err := parseUint(q.ClientID, "clientId")
		if err != nil {
			return nil, filter, err
		}
		if _, err := s.clientRepo.GetByID(clientID); err != nil {
			return nil, filter, err
		}
		filter.ClientID = &clientID
	}

	if q.ProductID != "" {
		productID, err := parseUint(q.ProductID, "productId")
		if err != nil {
			return nil, filter, err
		}
		if _, err := s.productRepo.GetByID(productID); err != nil {
			return nil, filter, err
		}
		filter.ProductID = &productID
	}

	if q.Status != "" {
		status, ok := models.ParseOrderStatus(q.Status)
		if !ok {
			return nil, filter, apperr.New(apperr.InvalidArgument, "status",
				"enter a valid status among INITIALIZED, PREPARED, SHIPPED, DELIVERED")
		}
		filter.Status = &status
	}

	return nil, filter, nil
}

func parseUint(raw, field string) (uint, error) {
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.New(apperr.InvalidArgument, field, "%q is not a valid integer id", raw)
	}
	return uint(v), nil
}
