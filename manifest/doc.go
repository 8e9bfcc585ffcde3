/*
Package manifest declares command trees in HCL files, as an alternative to building them in code.

A manifest is made of top level command and group blocks.
Groups may nest further command and group blocks, and both may declare option blocks.
Argument blocks are declared in order, and only apply to commands.

	group "home" {
	  description = "Home page commands"
	  aliases     = ["h"]

	  option "verbose" {
	    switch    = true
	    shortcuts = ["v"]
	  }

	  command "index" {
	    option "limit" {
	      type    = "int"
	      default = 3
	    }
	    argument "page" {
	      type = "string"
	    }
	  }
	}

Defaults are HCL expressions, converted to the declared type when the manifest is applied to a [command.Registry].
*/
package manifest
