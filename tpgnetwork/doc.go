// Package tpgnetwork is the top-level facade SPEC_FULL.md §6 names:
// TpgNetwork ties parser, netbuild/network, fault, fsim and dtpg together
// behind the public operations the core exposes — read_{blif,iscas89},
// rep_fault_list/fault/ffr_list/mffc_list/ppi_list/ppo_list/node_list/
// max_fault_id, plus thin Fsim/DtpgEngine/dominance-checker wrappers a
// caller can reach without importing every subsystem package directly.
package tpgnetwork
