package schemas

import "embed"

// SchemasFS содержит JSON-схемы всех событий системы
//
//go:embed events
var SchemasFS embed.FS
