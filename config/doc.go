// Package config holds the YAML-loadable configuration structs that replace
// the source's global-state singletons (SPEC_FULL.md §9 design note:
// "default SAT parameters, fault-map become explicit configuration structs
// threaded through constructors"). Grounded on
// jhkimqd-chaos-utils/pkg/config/config.go's Config/DefaultConfig shape.
package config
