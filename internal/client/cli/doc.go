// Package cli provides the kotoba command-line client.
//
// It wires configuration, the local database, the gateway services and the
// account and profile controllers into a cobra command tree:
//
//	kotoba register | login | logout | whoami | status
//	kotoba forgot-password | change-password
//	kotoba profile show | update | avatar <file>
//	kotoba progress list | today | record <category> <subcategory> <completed> <total>
//	kotoba vocab | grammar | reading [id]
//	kotoba chat
//
// Run executes one command line; the local database is opened on first use
// and closed when Run returns.
package cli
