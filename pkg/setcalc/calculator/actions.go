package calculator

import (
	"fmt"

	"github.com/sambeau/setcalc/pkg/setcalc/errors"
	"github.com/sambeau/setcalc/pkg/setcalc/operation"
	"github.com/sambeau/setcalc/pkg/setcalc/set"
)

// Action identifies a command verb.
type Action int

const (
	Invalid Action = iota
	Eval
	Union
	Intersection
	Difference
	Product
	Comp
	Resize
	Read
	Del
	Help
	Exit
)

// ActionDetails describes one entry of the command table.
type ActionDetails struct {
	Command     string
	Description string
	Action      Action
}

var actions = []ActionDetails{
	{
		Command: "eval",
		Description: "(uate) num ... - compute the result of function #num on the " +
			"following set(s); each set is prefixed with the count of numbers to read",
		Action: Eval,
	},
	{
		Command: "uni",
		Description: "(on) num1 num2 - Creates an operation that is the union of " +
			"operation #num1 and operation #num2",
		Action: Union,
	},
	{
		Command: "inter",
		Description: "(section) num1 num2 - Creates an operation that is the " +
			"intersection of operation #num1 and operation #num2",
		Action: Intersection,
	},
	{
		Command: "diff",
		Description: "(erence) num1 num2 - Creates an operation that is the " +
			"difference of operation #num1 and operation #num2",
		Action: Difference,
	},
	{
		Command: "prod",
		Description: "(uct) num1 num2 - Creates an operation that returns the product of " +
			"the items from the results of operation #num1 and operation #num2",
		Action: Product,
	},
	{
		Command: "comp",
		Description: "(osite) num1 num2 - Creates an operation that returns the sums of " +
			"the items from the results of operation #num1 and operation #num2",
		Action: Comp,
	},
	{
		Command:     "resize",
		Description: " - Choose to enter a new limit size for list of operations.",
		Action:      Resize,
	},
	{
		Command: "read",
		Description: " path - Read commands from text file.\n" +
			"  (for operation 'eval' write the sets in the same row)",
		Action: Read,
	},
	{
		Command:     "del",
		Description: "(ete) num - delete operation #num from the operation list",
		Action:      Del,
	},
	{
		Command:     "help",
		Description: " - print this command list",
		Action:      Help,
	},
	{
		Command:     "exit",
		Description: " - exit the program",
		Action:      Exit,
	},
}

// compositeKinds maps the operation-building actions to their node kind.
var compositeKinds = map[Action]operation.Kind{
	Union:        operation.Union,
	Intersection: operation.Intersection,
	Difference:   operation.Difference,
	Product:      operation.Product,
	Comp:         operation.Composition,
}

// Actions returns the command table.
func Actions() []ActionDetails {
	return append([]ActionDetails(nil), actions...)
}

// Verbs returns the recognised command words in table order.
func Verbs() []string {
	verbs := make([]string, len(actions))
	for i, a := range actions {
		verbs[i] = a.Command
	}
	return verbs
}

func lookupAction(verb string) Action {
	for _, a := range actions {
		if a.Command == verb {
			return a.Action
		}
	}
	return Invalid
}

// runAction checks capacity for operation-building actions before anything
// else is read, then dispatches.
func (s *Session) runAction(action Action, verb string) error {
	kind, composite := compositeKinds[action]
	if composite && s.reg.Full() {
		return s.reg.CapacityError()
	}

	switch action {
	case Invalid:
		return errors.NewInvalidCommand(verb, Verbs())
	case Eval:
		return s.eval()
	case Union, Intersection, Difference, Product, Comp:
		return s.binary(kind)
	case Resize:
		return s.readLimit()
	case Read:
		return s.read()
	case Del:
		return s.del()
	case Help:
		s.help()
		return nil
	case Exit:
		s.exit()
		return nil
	}
	return fmt.Errorf("unknown action %d", action)
}

// readOperation reads an operation index and resolves it.
func (s *Session) readOperation() (int, *operation.Node, error) {
	i, err := s.readInt("operation index")
	if err != nil {
		return 0, nil, err
	}
	n, err := s.reg.Get(i)
	if err != nil {
		return 0, nil, err
	}
	return i, n, nil
}

func (s *Session) eval() error {
	i, op, err := s.readOperation()
	if err != nil {
		return err
	}

	var inputs []set.Set
	for range op.LeafCount() {
		in, err := set.Parse(s.src)
		if err != nil {
			return err
		}
		inputs = append(inputs, in)
	}

	expr, err := op.RenderInputs(inputs, s.printer)
	if err != nil {
		return err
	}
	result, err := op.Evaluate(inputs)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "%s = %s\n", expr, result.Format(s.printer))
	s.log.Debugf("evaluated #%d on %d set(s): %d element(s)", i, len(inputs), result.Len())
	return nil
}

func (s *Session) binary(kind operation.Kind) error {
	_, left, err := s.readOperation()
	if err != nil {
		return err
	}
	_, right, err := s.readOperation()
	if err != nil {
		return err
	}
	n, err := operation.Compose(kind, left, right)
	if err != nil {
		return err
	}
	i, err := s.reg.Append(n)
	if err != nil {
		return err
	}
	s.log.Debugf("added #%d %s = %s", i, kind, n)
	return nil
}

func (s *Session) del() error {
	i, _, err := s.readOperation()
	if err != nil {
		return err
	}
	if err := s.reg.Delete(i); err != nil {
		return err
	}
	s.log.Debugf("deleted #%d", i)
	return nil
}

func (s *Session) help() {
	fmt.Fprintln(s.out, "The available commands are:")
	for _, a := range Actions() {
		fmt.Fprintf(s.out, "* %s%s\n", a.Command, a.Description)
	}
	fmt.Fprintln(s.out)
}
