/*
Package runner hosts an AbsherAi session in a terminal.

The Terminal type implements ports.UI: bot and user messages are printed with a
speaker prefix and every choice row becomes a numbered list. The Runner reads
lines from its input and routes them:

  - a number (Western or Arabic-Indic digits) selects a choice of the last row;
  - "/mic" asks the session to listen once;
  - "exit", "quit" or "خروج" ends the loop;
  - anything else is sanitized and submitted as user input.

# Usage

	term := runner.NewTerminal(os.Stdout)
	ctrl := session.NewController(catalog.Default(), term)
	defer ctrl.Close()

	if err := runner.NewRunner(term).Run(ctx, ctrl); err != nil {
		log.Fatal(err)
	}
*/
package runner
