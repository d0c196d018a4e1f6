package modkit

import "sellerbot/internal/modkit/module"

// Module is what every service module hands to api.Mount and the binaries.
// Declared in modkit/module so ports packages can import it without modkit
type Module = module.Module
