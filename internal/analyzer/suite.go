package analyzer

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/sanspareilsmyn/insightlens/internal/table"
)

const (
	DatasetCustomer    = "customer"
	DatasetMarket      = "market"
	DatasetOperational = "operational"
)

// Suite bundles the three analyzers and routes dataset updates by name.
type Suite struct {
	Customer    *CustomerBehaviorAnalyzer
	Market      *MarketTrendAnalyzer
	Operational *OperationalInsights
}

// NewSuite creates all analyzers, each with its own named logger.
func NewSuite(logger *zap.Logger, opts ...Option) *Suite {
	return &Suite{
		Customer:    NewCustomerBehaviorAnalyzer(logger.Named("customer"), opts...),
		Market:      NewMarketTrendAnalyzer(logger.Named("market"), opts...),
		Operational: NewOperationalInsights(logger.Named("operational")),
	}
}

// Datasets lists the dataset names accepted by Update.
func (s *Suite) Datasets() []string {
	return []string{DatasetCustomer, DatasetMarket, DatasetOperational}
}

// Holders returns the dataset holders in the order of Datasets.
func (s *Suite) Holders() []*Dataset {
	return []*Dataset{s.Customer.Dataset(), s.Market.Dataset(), s.Operational.Dataset()}
}

// Update replaces the table held by the named dataset.
func (s *Suite) Update(dataset string, rows table.Table) error {
	switch dataset {
	case DatasetCustomer:
		s.Customer.UpdateData(rows)
	case DatasetMarket:
		s.Market.UpdateData(rows)
	case DatasetOperational:
		s.Operational.UpdateData(rows)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownDataset, dataset)
	}
	return nil
}
