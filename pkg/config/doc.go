/*
Package config loads the optional checkoutpatch configuration file.

	            +-------------+
	            |   Config    |
	            |  (target)   |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   JSON   | |   YAML   | |   HCL    |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Names the file to patch (a path, or a glob matching exactly one file)
- Turns on a .bak copy before the file is overwritten
- Lists rule IDs that must not be applied

🔄 Flow:
1. Load checks whether the file exists; a missing default file means Default()
2. LoadConfig picks the decoder from the extension
3. Unknown fields are rejected by every decoder
4. Validate fills in the default target and checks skip entries

🔍 Example:

	# .checkoutpatch.yaml
	target: app/checkin-public/page.tsx
	backup: true
	skip:
	  - upload-message

The same file in HCL:

	target = default_target
	backup = true
	skip   = ["upload-message"]
*/
package config
