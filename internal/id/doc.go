// Package id provides identifier generation for sessions and change events.
//
// Session IDs are random UUIDs (v4). Event IDs are UUIDv7, which embed a
// millisecond timestamp so that IDs generated by one process sort in creation
// order.
package id
