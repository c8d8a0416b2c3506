// Package dataset loads the tabular inputs of the dashboard.
//
// Three CSV tables describe a data warehouse:
//
//	systems.csv       system_name, source_type, source_role
//	system_flows.csv  source_system, target_system, flow_weight, flow_direction
//	table_flows.csv   source_table, target_table, source_system, target_system,
//	                  table_flow_weight, transformation?, flow_direction?
//
// An optional fourth table maps systems to raster images that are embedded
// (base64) in hover text:
//
//	system_images.csv system_name, image_path
//
// Every table needs a header row. Columns are matched by name, so their
// order does not matter. Optional columns may be omitted entirely.
//
// # Loading
//
//	ds, err := dataset.Load(ctx, dataset.Paths{
//	    Systems:     "systems.csv",
//	    SystemFlows: "system_flows.csv",
//	    TableFlows:  "table_flows.csv",
//	}, logger)
//
// A [Dataset] is immutable after loading and safe for concurrent reads.
// Image problems, from a bad mapping file down to a single unreadable image,
// are skipped with a warning; every other input problem is a fatal error
// carrying a code from
// [github.com/matzehuels/warehousemap/pkg/errors].
package dataset
