/*
Package flatconfig compiles layered configuration trees into a single flat
mapping of environment-variable style keys to string values.

Given

	## default.yaml
	foo:
	    bar: 10
	    baz: false
	hoof: doof

	## production.yaml
	foo:
	    baz: true

then

	conf, warnings, err := flatconfig.NewPipeline(
		flatconfig.WithSource("conf/default.yaml"),
		flatconfig.WithSource("conf/production.yaml"),
	).Build(loader)

produces

	FOO__BAR=10
	FOO__BAZ=true
	HOOF=doof

Sources are processed strictly in order and later sources always win. A
source that sets a key to the value it already holds yields a RedundantValue
warning; warnings never fail a build, callers decide whether to escalate
them.
*/
package flatconfig
