/*
Package dump provides I/O operations for collected states of the Provena
smart contracts.

Dumps are taken from running networks by 'provena-adm chain dump' or from
test chains, and are used to test contract updates against real data (see
migration package). A dump is a single JSON file named '<label>@<block>.json'
holding states and storages of the contracts listed by contracts.Dirs.
*/
package dump
