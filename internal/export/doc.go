// Package export produces the CSV registers that accompany a policy set:
// the policy index, the risk register and the control map.
package export
