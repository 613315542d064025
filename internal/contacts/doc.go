// Package contacts turns a party's address book into the fixed-shape
// ContactList the matcher consumes.
//
// Hashing and normalisation happen here, on the party's own machine, before
// anything is sealed. Encode never truncates: more than MaxContacts hashes is
// a caller error.
package contacts
