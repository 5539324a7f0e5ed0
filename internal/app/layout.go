package app

// HUDWidth is the pixel width of the control panel drawn to the right of the
// table view. Window sizing must account for it.
const HUDWidth = 220
