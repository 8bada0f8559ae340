// Packages lib acts as a library for modules that do not fit
// strictly into other layers.
//
// It contains background job processing
// (using Redis/Asynq), and email client integrations (like Resend).
package lib
