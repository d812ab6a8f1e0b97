// Package cluster loads the node inventory the CLI targets and resolves
// node and cluster selections into a deterministic target set.
//
// The inventory lives in a YAML config file, discovered in order from the
// user's home directory, the working directory, and /etc/statctl:
//
//	nodes:
//	  mta-1:
//	    address: "10.1.0.11:8080"
//	    cluster: eu
//	  mta-2:
//	    address: "10.1.0.12:8080"
//	    cluster: eu
//	  relay-1:
//	    address: "10.2.0.11:8080"
//	    cluster: us
//
// Clusters are derived from each node's cluster attribute. Resolution is
// strict: naming an unknown node or cluster fails instead of silently
// querying a smaller set. Targets are always ordered by cluster then node
// name so repeated commands walk nodes in the same order.
package cluster
