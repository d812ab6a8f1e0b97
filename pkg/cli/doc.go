/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

// Package cli implements the statctl command line interface.
//
// statctl queries counters across the cluster's statd daemons:
//
//	statctl stat queue-size                  # one named counter, every node
//	statctl stat                             # all named counters
//	statctl stat --app mail:total . -        # keyed counters: any 2nd key, blank 3rd
//	statctl stat --app --sum . . .           # one cluster-wide total
//	statctl stat -n mta-1 -n mta-2 uptime    # restrict to specific nodes
//	statctl stat -c eu queue-size            # restrict to a cluster group
//	statctl nodes                            # show the resolved inventory
//
// Key pattern tokens for --app queries: a literal string matches that
// exact component, "." matches anything including absent, and "-"
// matches only an explicitly absent component. Omitted trailing tokens
// default to ".".
//
//	--output, -o   Write to a file instead of stdout
//	--format, -t   Output format: json, yaml, or table
//
// When some nodes fail the remaining results are still rendered, the
// failures are reported on stderr, and the process exits with code 99
// unless --ignore-partial is given.
package cli
