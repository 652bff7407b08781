package commands

// ListCmd implements the 'list' command.
type ListCmd struct{}

func (c *ListCmd) Run(g *Global, root *CLI) error {
	env, err := newEnvironment(g, root)
	if err != nil {
		return err
	}
	g.printer(root).List(env.registry.Names(), env.registry.Path)
	return nil
}
