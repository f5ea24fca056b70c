package entity

import (
	"strconv"
	"strings"
)

// ValidKind reports whether k names one of the four entity kinds.
func ValidKind(k Kind) bool {
	switch k {
	case KindClient, KindProject, KindTask, KindTime:
		return true
	}
	return false
}

// ValidatePatch checks a patch before it reaches the store: the kind must
// be known, fields must belong to the kind, and a time interval must not
// end before it starts. Reference existence is checked separately against
// the store.
func ValidatePatch(p Patch) error {
	if !ValidKind(p.Kind) {
		return ErrUnknownKind
	}

	if p.Note != nil && p.Kind != KindClient && p.Kind != KindTime {
		return ErrInvalidInput
	}
	if p.ClientUUID != nil && p.Kind != KindProject {
		return ErrInvalidInput
	}
	if p.ProjectUUID != nil && p.Kind != KindTask {
		return ErrInvalidInput
	}
	if p.Kind != KindTime {
		if p.TaskUUID != nil || p.Start != nil || p.End != nil || p.PaymentStatus != nil {
			return ErrInvalidInput
		}
		if p.UUID == "" {
			switch p.Kind {
			case KindProject:
				if p.ClientUUID == nil {
					return ErrInvalidReference
				}
			case KindTask:
				if p.ProjectUUID == nil {
					return ErrInvalidReference
				}
			}
		}
		return nil
	}

	if p.UUID == "" {
		if p.TaskUUID == nil {
			return ErrInvalidReference
		}
		if p.Start == nil || p.End == nil {
			return ErrInvalidInput
		}
	}
	if p.PaymentStatus != nil {
		switch *p.PaymentStatus {
		case PaymentUnpaid, PaymentPaid:
		default:
			return ErrInvalidInput
		}
	}
	if p.Start != nil && p.End != nil && p.End.Before(*p.Start) {
		return ErrInvalidDuration
	}
	return nil
}

// ParseHours parses a user-entered duration in hours. Decimal commas are
// normalized to dots before parsing ("1,25" reads as 1.25).
func ParseHours(input string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(input), ",", ".")
	hours, err := strconv.ParseFloat(normalized, 64)
	if err != nil || hours < 0 {
		return 0, ErrInvalidDuration
	}
	return hours, nil
}
