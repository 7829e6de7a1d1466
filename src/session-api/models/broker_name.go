package models

import (
	"fmt"
	"strings"
)

type BrokerName string

const (
	BrokerTradeLocker BrokerName = "tradelocker"
	BrokerTopstep     BrokerName = "topstep"
	BrokerTradovate   BrokerName = "tradovate"
	BrokerProjectX    BrokerName = "projectx"
)

var SupportedBrokers = []BrokerName{
	BrokerTradeLocker,
	BrokerTopstep,
	BrokerTradovate,
	BrokerProjectX,
}

func (b BrokerName) Validate() error {
	switch b {
	case BrokerTradeLocker:
		break
	case BrokerTopstep:
		break
	case BrokerTradovate:
		break
	case BrokerProjectX:
		break
	default:
		return fmt.Errorf("BrokerName: %w: %q", ErrInvalidBroker, string(b))
	}

	return nil
}

func (b BrokerName) String() string {
	return string(b)
}

// ParseBrokerName accepts any casing and surrounding whitespace.
func ParseBrokerName(s string) (BrokerName, error) {
	b := BrokerName(strings.ToLower(strings.TrimSpace(s)))
	if err := b.Validate(); err != nil {
		return "", err
	}

	return b, nil
}
