// Package sellers picks the marketplace adapter a binary runs against
package sellers

import (
	"sellerbot/internal/adapters/marketplace"
	"sellerbot/internal/adapters/marketplace/ozon"
	"sellerbot/internal/adapters/marketplace/wb"
	"sellerbot/internal/platform/config"
	perr "sellerbot/internal/platform/errors"
	"sellerbot/internal/platform/logger"
)

// New returns the adapter for sym configured from root
func New(root config.Conf, sym marketplace.Symbol, log *logger.Logger) (marketplace.Seller, error) {
	switch sym {
	case marketplace.WB:
		o := wb.FromConfig(root)
		o.Log = log
		return wb.New(o), nil
	case marketplace.Ozon:
		o := ozon.FromConfig(root)
		o.Log = log
		return ozon.New(o), nil
	}
	return nil, perr.InvalidArgf("unknown marketplace %q", sym)
}

// FromConfig reads MARKETPLACE (wb | oz, default wb) and builds the adapter
func FromConfig(root config.Conf, log *logger.Logger) (marketplace.Seller, error) {
	sym := root.MayEnum("MARKETPLACE", string(marketplace.WB), string(marketplace.WB), string(marketplace.Ozon))
	return New(root, marketplace.Symbol(sym), log)
}
