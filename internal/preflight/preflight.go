package preflight

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	// Severity is the level a failure of this check is reported at.
	Severity Severity
	Path     string
	Detail   string
	Hint     string
	// Required results block the job when they fail.
	Required bool
}

// RunAll evaluates every check for job in a fixed order and reports each
// failure through the checker's reporter. It never stops early.
func (c *Checker) RunAll(job Job) []Result {
	evals := []func() Result{
		c.pentahoInstalled,
		c.kitchenPresent,
		c.migRootPresent,
		func() Result { return c.notReserved(job) },
		func() Result { return c.customerDirPresent(job) },
		func() Result { return c.migTypeDirPresent(job) },
		func() Result {
			res := c.propertiesPresent(job)
			res.Required = !c.settings.PropertiesOptional(job.MigType)
			return res
		},
		func() Result { return c.parametersPresent(job) },
		func() Result { return c.typeParametersPresent(job) },
		func() Result { return c.customerReadable(job) },
		func() Result { return c.customerIdle(job) },
	}

	results := make([]Result, 0, len(evals))
	for _, eval := range evals {
		results = append(results, c.emit(eval()))
	}
	return results
}

// Blocking returns the failed results that are required.
func Blocking(results []Result) []Result {
	var blocking []Result
	for _, res := range results {
		if !res.Passed && res.Required {
			blocking = append(blocking, res)
		}
	}
	return blocking
}

// Ready reports whether no result blocks the job.
func Ready(results []Result) bool {
	return len(Blocking(results)) == 0
}
