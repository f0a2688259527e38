// Package deployment applies declarative component deployments to a loader.
//
// A deployment file (YAML, JSON or TOML, read with viper) lists path lists to
// import, packages to import by name and the component instances to create:
//
//	imports:
//	  - /opt/components
//	packages:
//	  - name: sensors
//	components:
//	  - name: w1
//	    type: Widget
//
// Apply runs the three phases in order. Teardown destroys the created components
// in reverse order.
package deployment
