/*
Package migration provides framework to test migration of the Provena smart
contracts.

Contracts keep stakeholder registrations, handoffs, scores and disputes which
must survive code updates. The package provides services of Neo blockchain
and particular contract needed for testing. Test blockchain environment is
based on dumps of remote Provena blockchain instances or of test chains (see
dump package).
*/
package migration
