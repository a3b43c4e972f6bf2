/*
Package operation runs the check-in/checkout rule set against the target file.

	+-------------+
	|  Operator   |
	| (Apply/Diff)|
	+------+------+
	       |
	+------+------+      +-------------+
	| patch.Apply |----->|  FileStore  |
	|   (rules)   |      | (read/save) |
	+-------------+      +-------------+

🎯 Purpose:
- Resolves the configured target to a single file
- Folds the rules over its content
- Writes the file back only when the content changed

🔄 Flow:
1. Resolve the target (plain path or glob)
2. Read the file; a read failure aborts before any rule runs
3. Apply the rules in order, skipping the ones listed in the config
4. Back up the file when asked, then save it atomically

Status and Diff share steps 1 to 3 and never touch the file.

🔍 Example:

	op, err := operation.New(operation.Options{
		Config: cfg,
		Store:  store.New("."),
		Rules:  checkout.Rules(),
	})
	report, err := op.Apply(ctx)
*/
package operation
