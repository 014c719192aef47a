package skylar

import (
	"strings"
)

// ConsistencyLevel is the replica-acknowledgement policy required for an
// operation to be considered successful. It is carried on every Operation
// unchanged; the engine never reinterprets it.
type ConsistencyLevel uint8

const (
	ConsistencyOne ConsistencyLevel = 1 + iota
	ConsistencyTwo
	ConsistencyThree
	ConsistencyQuorum
	ConsistencyAll
	ConsistencyLocalQuorum
	ConsistencyEachQuorum
	ConsistencySerial
	ConsistencyLocalSerial
	ConsistencyLocalOne
)

func (self ConsistencyLevel) String() string {
	switch self {
	case ConsistencyOne:
		return "ONE"
	case ConsistencyTwo:
		return "TWO"
	case ConsistencyThree:
		return "THREE"
	case ConsistencyQuorum:
		return "QUORUM"
	case ConsistencyAll:
		return "ALL"
	case ConsistencyLocalQuorum:
		return "LOCAL_QUORUM"
	case ConsistencyEachQuorum:
		return "EACH_QUORUM"
	case ConsistencySerial:
		return "SERIAL"
	case ConsistencyLocalSerial:
		return "LOCAL_SERIAL"
	case ConsistencyLocalOne:
		return "LOCAL_ONE"
	default:
		return "UNKNOWN_CONSISTENCY"
	}
}

func ParseConsistencyLevel(name string) (ConsistencyLevel, error) {
	switch strings.ToUpper(name) {
	case "ONE":
		return ConsistencyOne, nil
	case "TWO":
		return ConsistencyTwo, nil
	case "THREE":
		return ConsistencyThree, nil
	case "QUORUM":
		return ConsistencyQuorum, nil
	case "ALL":
		return ConsistencyAll, nil
	case "LOCAL_QUORUM":
		return ConsistencyLocalQuorum, nil
	case "EACH_QUORUM":
		return ConsistencyEachQuorum, nil
	case "SERIAL":
		return ConsistencySerial, nil
	case "LOCAL_SERIAL":
		return ConsistencyLocalSerial, nil
	case "LOCAL_ONE":
		return ConsistencyLocalOne, nil
	default:
		return 0, NewConfigError("unknown consistency level: %s", name)
	}
}
