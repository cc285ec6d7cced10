package ethereum

// battleContractABI covers the slice of the deployed contract this service
// touches: recording results and reading records and the leaderboard.
const battleContractABI = `[
  {
    "inputs": [
      { "name": "opponent", "type": "address" },
      { "name": "playerWon", "type": "bool" },
      { "name": "playerScore", "type": "uint256" },
      { "name": "opponentScore", "type": "uint256" }
    ],
    "name": "recordBattleResult",
    "outputs": [],
    "stateMutability": "nonpayable",
    "type": "function"
  },
  {
    "inputs": [{ "name": "player", "type": "address" }],
    "name": "getPlayerRecord",
    "outputs": [
      {
        "components": [
          { "name": "player", "type": "address" },
          { "name": "wins", "type": "uint256" },
          { "name": "losses", "type": "uint256" },
          { "name": "totalBattles", "type": "uint256" },
          { "name": "lastBattleTime", "type": "uint256" },
          { "name": "winStreak", "type": "uint256" },
          { "name": "highestWinStreak", "type": "uint256" }
        ],
        "name": "",
        "type": "tuple"
      }
    ],
    "stateMutability": "view",
    "type": "function"
  },
  {
    "inputs": [{ "name": "limit", "type": "uint256" }],
    "name": "getLeaderboard",
    "outputs": [
      { "name": "", "type": "address[]" },
      { "name": "", "type": "uint256[]" }
    ],
    "stateMutability": "view",
    "type": "function"
  }
]`
