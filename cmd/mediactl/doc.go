// Command mediactl manages a media catalog directory from the shell.
//
// It works on the same directory and metadata database as the server and
// goes through the same catalog rules, so what it lists is what the HTTP
// API lists.
//
// Usage:
//
//	mediactl [--dir DIR] [--absolute] [--db FILE] [--verbose] <command>
//
// Commands:
//
//	list    Grouped listing (--types, --tags, --sort, --tree, --json)
//	show    Details of one item
//	touch   Set the date of an item, optionally its title and tags
//	rm      Remove an item
//	add     Copy a file into the catalog directory
package main
