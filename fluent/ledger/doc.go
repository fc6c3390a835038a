// Package ledger records the assertion failures collected by a soft
// container, in the order the checks completed.
package ledger
