package loom

// ReplaceConfig overwrites a registration unconditionally, the write-once
// constant rule included. Intended for test fixtures (see wiretest); it
// bypasses none of the strategy validation.
func ReplaceConfig(i *Injector, cfg Config) error {
	if cfg.Strategy == Provider {
		produce, ok := cfg.Value.(func() Config)
		if !ok {
			return errInvalidConfig(cfg.Name, "provider value must be a func() loom.Config")
		}
		produced := produce()
		if produced.Strategy == Provider {
			return errNestedProvider(cfg.Name)
		}
		return ReplaceConfig(i, produced)
	}

	rc, err := toInternal(cfg)
	if err != nil {
		return err
	}

	if err := i.reg.Replace(rc); err != nil {
		return wrapRegisterErr(err)
	}

	i.engine.Forget(cfg.Name)
	return nil
}
