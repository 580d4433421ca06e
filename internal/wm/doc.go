/*
Package wm tracks the application windows of a desktop session.

A Manager owns an ordered store of Window records and a z-order counter.
Every mutation goes through the Manager:

  - Launch opens an application, or focuses it when it already has a window
  - Focus raises a window by assigning it the next z-order value
  - ToggleMinimize and ToggleMaximize flip the two display flags
  - Move and the Press/Drag/Release sequence reposition a window
  - Close and Logout remove windows

The focused window is never stored. It is derived from the records as the
non-minimized window with the highest z-order value (see Topmost).

Example usage:

	mgr := wm.NewManager(apps.Default(), wm.DefaultOptions())
	id, err := mgr.Launch(apps.Calculator)
	if err != nil {
		// handle error
	}
	_ = mgr.ToggleMaximize(id)
*/
package wm
