package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// run opens a session, hands it to fn and closes it.
func run(opts *RootOptions, cmd *cobra.Command, fn func(s *session) error) error {
	s, err := opts.open(cmd)
	if err != nil {
		return err
	}
	return errors.Join(fn(s), s.close())
}

func newGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY [FIELD|INDEX]",
		Short: "Print a stored value, or one field or element of it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(s *session) error {
				o, err := s.lookup(args[0])
				if err != nil {
					return err
				}
				if len(args) == 1 {
					return s.out.Print(o.c.Call())
				}
				sel, err := o.selector(args[1])
				if err != nil {
					return err
				}
				return s.out.Print(o.c.Call(sel))
			})
		},
	}
}

func newSetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY [FIELD|INDEX] VALUE",
		Short: "Write a value, or one field or element of it",
		Long: `Write a value, or one field or element of it.

VALUE is parsed as JSON; anything else is stored as a string. Writing an
object onto a stored object merges the fields. Writing a value of another
shape replaces the stored one.`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(s *session) error {
				key := args[0]
				value := parseValue(args[len(args)-1])
				if value == nil {
					return fmt.Errorf("cannot store null under %q: use del", key)
				}

				if len(args) == 3 {
					o, err := s.lookup(key)
					if err != nil {
						return err
					}
					sel, err := o.selector(args[1])
					if err != nil {
						return err
					}
					o.c.Call(sel, value)
					return nil
				}

				kind := kindOf(value)
				o, err := s.lookup(key)
				switch {
				case err != nil:
					o = s.attach(key, kind)
				case o.kind != kind && (o.kind == "object" || o.kind == "array" || kind != "scalar"):
					o.c.Cleanup()
					o = s.attach(key, kind)
				}
				o.c.Call(value)
				return nil
			})
		},
	}
}

func newPushCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "push KEY VALUE [INDEX]",
		Short: "Insert an element into an array, creating it when missing",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(s *session) error {
				o, err := s.lookup(args[0])
				if err != nil {
					o = s.attach(args[0], "array")
				}
				list, err := o.storage()
				if err != nil {
					return err
				}

				value := parseValue(args[1])
				if len(args) == 3 {
					i, err := strconv.Atoi(args[2])
					if err != nil {
						return fmt.Errorf("index %q: not an integer", args[2])
					}
					list.InsertAt(i, value)
				} else {
					list.Insert(value)
				}
				return s.out.Print(list.Len())
			})
		},
	}
}

func newPopCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pop KEY [INDEX]",
		Short: "Remove an element from an array and print it",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(s *session) error {
				o, err := s.lookup(args[0])
				if err != nil {
					return err
				}
				list, err := o.storage()
				if err != nil {
					return err
				}

				i := list.Len() - 1
				if len(args) == 2 {
					if i, err = strconv.Atoi(args[1]); err != nil {
						return fmt.Errorf("index %q: not an integer", args[1])
					}
				}
				removed, ok := list.Remove(i)
				if !ok {
					return fmt.Errorf("%q has no element at %d", args[0], i)
				}
				return s.out.Print(removed)
			})
		},
	}
}

func newLenCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "len KEY [N]",
		Short: "Print the length of an array, truncating it to N first",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(s *session) error {
				o, err := s.lookup(args[0])
				if err != nil {
					return err
				}
				list, err := o.storage()
				if err != nil {
					return err
				}

				if len(args) == 2 {
					n, err := strconv.Atoi(args[1])
					if err != nil {
						return fmt.Errorf("length %q: not an integer", args[1])
					}
					list.Truncate(n)
				}
				return s.out.Print(list.Len())
			})
		},
	}
}

func newDelCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "del KEY",
		Short: "Clean a value up, removing it from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(s *session) error {
				o, err := s.lookup(args[0])
				if err != nil {
					return err
				}
				o.c.Cleanup()
				return nil
			})
		},
	}
}

func newKeysCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "List stored keys in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(s *session) error {
				keys, err := s.store.Keys()
				if err != nil {
					return err
				}
				return s.out.Lines(keys)
			})
		},
	}
}

func newDumpCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "dump",
		Short: "Print every stored value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, cmd, func(s *session) error {
				keys, err := s.store.Keys()
				if err != nil {
					return err
				}
				all := make(map[string]any, len(keys))
				for _, k := range keys {
					var v any
					if err := s.store.Get(k, &v); err != nil {
						return err
					}
					all[k] = v
				}
				return s.out.Print(all)
			})
		},
	}
}
